package usecase

import (
	"strings"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"
)

// ProfanityUsecase tests messages against the active banned word list.
// Matching is case-insensitive and substring-based over the normalized
// variants, trading false positives for resistance to obfuscation.
type ProfanityUsecase struct {
	wordlistRepo repo.WordlistRepo
	prefix       string
	commands     []string // registered command names and aliases
}

// NewProfanityUsecase creates a new profanity usecase
func NewProfanityUsecase(wordlistRepo repo.WordlistRepo, prefix string, commands []string) *ProfanityUsecase {
	return &ProfanityUsecase{
		wordlistRepo: wordlistRepo,
		prefix:       prefix,
		commands:     commands,
	}
}

// Matches reports whether any normalized variant of the text contains any
// word in the guild's active word list.
func (uc *ProfanityUsecase) Matches(text string, settings *domain.GuildSettings) bool {
	words := uc.activeWords(settings)
	if len(words) == 0 {
		return false
	}

	for _, variant := range domain.Variants(text) {
		for _, word := range words {
			if word != "" && strings.Contains(variant, word) {
				return true
			}
		}
	}
	return false
}

// IsCommandInvocation checks whether the message looks like a bot command.
// Word-management commands must never be blocked by the very filter they
// configure, so command invocations are exempt from deletion.
func (uc *ProfanityUsecase) IsCommandInvocation(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	if uc.prefix == "" || !strings.HasPrefix(lower, strings.ToLower(uc.prefix)) {
		return false
	}

	rest := strings.TrimPrefix(lower, strings.ToLower(uc.prefix))
	name := rest
	if i := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' }); i >= 0 {
		name = rest[:i]
	}

	for _, cmd := range uc.commands {
		if name == cmd {
			return true
		}
	}
	return false
}

// activeWords resolves the word list: the guild's custom list when present,
// otherwise the bundled default list. Words are compared lowercase.
func (uc *ProfanityUsecase) activeWords(settings *domain.GuildSettings) []string {
	var words []string
	if settings != nil && settings.HasCustomWords() {
		words = settings.Words
	} else if uc.wordlistRepo != nil {
		words = uc.wordlistRepo.DefaultWords()
	}

	lowered := make([]string, 0, len(words))
	for _, w := range words {
		lowered = append(lowered, strings.ToLower(w))
	}
	return lowered
}
