package repo

// WordlistRepo provides the bundled default banned word list.
// Implementations load the list once and cache it.
type WordlistRepo interface {
	// DefaultWords returns the default word list
	DefaultWords() []string
}
