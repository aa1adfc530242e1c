package domain

import (
	"strings"
	"unicode"
)

// invisibleRunes are zero-width or otherwise invisible characters commonly
// used to slip words past keyword filters.
var invisibleRunes = map[rune]bool{
	'\u00ad': true, // soft hyphen
	'\u200b': true, // zero width space
	'\u200c': true, // zero width non-joiner
	'\u200d': true, // zero width joiner
	'\u2060': true, // word joiner
	'\ufeff': true, // zero width no-break space
}

// Variants produces the normalized forms of a message used for word matching:
// lowercase, whitespace-stripped, punctuation-stripped, invisible-character
//-stripped, and duplicate-character-collapsed. The function is total;
// unrecognized characters pass through unchanged.
func Variants(text string) []string {
	lower := strings.ToLower(text)
	return []string{
		lower,
		StripWhitespace(lower),
		StripPunctuation(lower),
		StripInvisible(lower),
		CollapseDuplicates(lower),
	}
}

// StripWhitespace removes all whitespace characters.
func StripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripPunctuation removes everything that is not a letter, digit,
// underscore or whitespace.
func StripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripInvisible removes known zero-width and invisible characters.
func StripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !invisibleRunes[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseDuplicates keeps only the first occurrence of each character,
// preserving order. "heello" becomes "helo", defeating padding like "baaad".
func CollapseDuplicates(s string) string {
	seen := make(map[rune]bool, len(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		b.WriteRune(r)
	}
	return b.String()
}
