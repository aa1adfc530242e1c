package repo

import (
	"context"

	"github.com/wardenbot/warden/internal/biz/domain"
)

// SettingsRepo is the per-guild policy settings interface.
// Settings are mutated by moderation commands and read by the automod core.
type SettingsRepo interface {
	// Get returns the guild's settings, or (nil, nil) if none stored yet.
	// Absent settings mean all policies are disabled.
	Get(ctx context.Context, guildID string) (*domain.GuildSettings, error)

	// SetProfanityEnabled toggles the profanity filter
	SetProfanityEnabled(ctx context.Context, guildID string, enabled bool) error

	// SetSpamEnabled toggles the spam filter
	SetSpamEnabled(ctx context.Context, guildID string, enabled bool) error

	// SetMuteRole stores the guild's designated mute role
	SetMuteRole(ctx context.Context, guildID, roleID string) error

	// AddWord registers a custom banned word
	AddWord(ctx context.Context, guildID, word string) error

	// RemoveWord unregisters a custom banned word, reporting whether it existed
	RemoveWord(ctx context.Context, guildID, word string) (bool, error)

	// ClearWords removes every custom banned word for the guild
	ClearWords(ctx context.Context, guildID string) error

	// AddWhitelist exempts a member from spam enforcement
	AddWhitelist(ctx context.Context, guildID, memberID string) error

	// RemoveWhitelist removes a member's exemption, reporting whether it existed
	RemoveWhitelist(ctx context.Context, guildID, memberID string) (bool, error)

	// Close closes the underlying store
	Close() error
}
