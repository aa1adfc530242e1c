package domain

// GuildSettings represents per-guild moderation policy configuration.
// A guild with no stored settings is treated as all policies disabled.
type GuildSettings struct {
	GuildID          string
	ProfanityEnabled bool
	SpamEnabled      bool
	MuteRoleID       string
	Words            []string // custom word list; empty = use the default list
	SpamWhitelist    []string // member IDs exempt from spam enforcement
}

// IsWhitelisted checks if a member is exempt from spam enforcement.
func (s *GuildSettings) IsWhitelisted(memberID string) bool {
	for _, id := range s.SpamWhitelist {
		if id == memberID {
			return true
		}
	}
	return false
}

// HasCustomWords reports whether the guild overrides the default word list.
func (s *GuildSettings) HasCustomWords() bool {
	return len(s.Words) > 0
}
