package domain

import "time"

// Punishment represents one active mute.
// At most one punishment exists per member; re-muting replaces the record.
type Punishment struct {
	MemberID    string
	GuildID     string
	ModeratorID string
	Reason      string
	CreatedAt   time.Time
	Duration    *time.Duration // nil = indefinite, never auto-expired
}

// ExpiresAt returns the expiry time. The second return value is false for
// indefinite punishments.
func (p *Punishment) ExpiresAt() (time.Time, bool) {
	if p.Duration == nil {
		return time.Time{}, false
	}
	return p.CreatedAt.Add(*p.Duration), true
}

// ExpiredAt checks whether the punishment has expired at the given time.
// Indefinite punishments never expire.
func (p *Punishment) ExpiredAt(now time.Time) bool {
	expiry, ok := p.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(expiry)
}
