package data

import (
	"fmt"
	"os"
	"strings"

	"github.com/wardenbot/warden/internal/biz/repo"
)

// wordlistRepo serves the bundled default word list, loaded once at startup
type wordlistRepo struct {
	words []string
}

// NewWordlistRepo loads the newline-delimited default word list from disk
func NewWordlistRepo(path string) (repo.WordlistRepo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	var words []string
	for _, line := range strings.Split(string(raw), "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			words = append(words, word)
		}
	}

	return &wordlistRepo{words: words}, nil
}

// DefaultWords returns the cached default word list
func (r *wordlistRepo) DefaultWords() []string {
	return r.words
}
