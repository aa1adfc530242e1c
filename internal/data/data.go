package data

import (
	"path/filepath"

	"github.com/wardenbot/warden/discord"
	"github.com/wardenbot/warden/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Punishments repo.PunishmentRepo
	Settings    repo.SettingsRepo
	Wordlist    repo.WordlistRepo
	Platform    repo.PlatformRepo
}

// NewRepositories creates all repositories. dataDir holds the sqlite
// databases; wordlistPath points at the bundled default word list.
func NewRepositories(client *discord.Client, dataDir, wordlistPath string) (*Repositories, error) {
	punishments, err := NewPunishmentRepo(filepath.Join(dataDir, "mutes.db"))
	if err != nil {
		return nil, err
	}

	settings, err := NewSettingsRepo(filepath.Join(dataDir, "settings.db"))
	if err != nil {
		punishments.Close()
		return nil, err
	}

	wordlist, err := NewWordlistRepo(wordlistPath)
	if err != nil {
		punishments.Close()
		settings.Close()
		return nil, err
	}

	return &Repositories{
		Punishments: punishments,
		Settings:    settings,
		Wordlist:    wordlist,
		Platform:    NewDiscordRepo(client),
	}, nil
}

// Close closes every store-backed repository
func (r *Repositories) Close() {
	if r.Punishments != nil {
		r.Punishments.Close()
	}
	if r.Settings != nil {
		r.Settings.Close()
	}
}
