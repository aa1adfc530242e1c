package domain

import "time"

// Message represents one inbound guild message (value object).
// Messages are held transiently in the activity cache and never persisted.
type Message struct {
	ID        string
	GuildID   string
	ChannelID string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// Age returns how long ago the message was created.
func (m *Message) Age(now time.Time) time.Duration {
	return now.Sub(m.CreatedAt)
}

// OlderThan checks whether the message falls outside the given window.
func (m *Message) OlderThan(now time.Time, window time.Duration) bool {
	return m.Age(now) > window
}
