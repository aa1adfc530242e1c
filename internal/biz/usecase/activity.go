package usecase

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wardenbot/warden/internal/biz/domain"
)

// ActivityUsecase maintains per-member sliding windows of recent messages
// and answers the spam threshold query. Windows are pruned lazily on read;
// the member-keyed LRU bounds total memory for inactive members.
type ActivityUsecase struct {
	mu        sync.Mutex
	windows   *lru.Cache[string, []domain.Message]
	window    time.Duration
	threshold int
}

// NewActivityUsecase creates a new activity cache.
// window is the trailing interval considered for spam detection, threshold
// is the message count above which a member is flagged, cacheSize bounds
// how many members keep a window in memory.
func NewActivityUsecase(window time.Duration, threshold, cacheSize int) (*ActivityUsecase, error) {
	windows, err := lru.New[string, []domain.Message](cacheSize)
	if err != nil {
		return nil, err
	}
	return &ActivityUsecase{
		windows:   windows,
		window:    window,
		threshold: threshold,
	}, nil
}

// Record appends a message to its author's window, creating the window on
// first contact. Recording happens for every message regardless of policy
// outcome so burst detection keeps continuity.
func (uc *ActivityUsecase) Record(msg domain.Message) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	events, _ := uc.windows.Get(msg.AuthorID)
	uc.windows.Add(msg.AuthorID, append(events, msg))
}

// Window returns the member's current window with stale entries pruned.
// The pruned window is written back, so repeated reads are idempotent.
func (uc *ActivityUsecase) Window(memberID string) []domain.Message {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.pruneLocked(memberID)
}

// Clear drops the member's window entirely, reporting whether one existed.
// The window is cleared after a spam verdict is acted on so the same burst
// cannot trigger twice.
func (uc *ActivityUsecase) Clear(memberID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.windows.Remove(memberID)
}

// IsSpamming reports whether the member's pruned window exceeds the
// threshold. Pure read, no state of its own.
func (uc *ActivityUsecase) IsSpamming(memberID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.pruneLocked(memberID)) > uc.threshold
}

func (uc *ActivityUsecase) pruneLocked(memberID string) []domain.Message {
	events, ok := uc.windows.Get(memberID)
	if !ok {
		return nil
	}

	now := time.Now()
	kept := events[:0]
	for _, msg := range events {
		if !msg.OlderThan(now, uc.window) {
			kept = append(kept, msg)
		}
	}
	uc.windows.Add(memberID, kept)
	return kept
}
