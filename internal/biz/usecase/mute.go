package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"
)

// MuteUsecase owns the mute lifecycle: the persisted ledger is the source
// of truth, mirrored into an internally synchronized in-memory index shared
// by the message path and the reconciliation loop. All index mutation goes
// through this usecase.
type MuteUsecase struct {
	ledger   repo.PunishmentRepo
	platform repo.PlatformRepo

	mu    sync.RWMutex
	index map[string]*domain.Punishment
}

// NewMuteUsecase creates a new mute usecase
func NewMuteUsecase(ledger repo.PunishmentRepo, platform repo.PlatformRepo) *MuteUsecase {
	return &MuteUsecase{
		ledger:   ledger,
		platform: platform,
		index:    make(map[string]*domain.Punishment),
	}
}

// Rebuild replaces the in-memory index with the ledger contents. Run once
// at startup, before the reconciler's first tick, so mutes that expired
// during downtime are lifted immediately.
func (uc *MuteUsecase) Rebuild(ctx context.Context) error {
	records, err := uc.ledger.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to rebuild mute index: %w", err)
	}

	index := make(map[string]*domain.Punishment, len(records))
	for _, p := range records {
		index[p.MemberID] = p
	}

	uc.mu.Lock()
	uc.index = index
	uc.mu.Unlock()
	return nil
}

// Issue records a mute in the ledger, assigns the mute role and mirrors the
// record into the index. A ledger failure aborts the mute; a role failure
// is tolerated (the record still drives eventual reversal).
func (uc *MuteUsecase) Issue(ctx context.Context, p *domain.Punishment, roleID string) error {
	if err := uc.ledger.Put(ctx, p); err != nil {
		return err
	}

	if roleID != "" {
		// Platform denial is non-fatal; the ledger record stands either way
		_ = uc.platform.AddRole(ctx, p.GuildID, p.MemberID, roleID)
	}

	uc.mu.Lock()
	uc.index[p.MemberID] = p
	uc.mu.Unlock()
	return nil
}

// Lift removes a mute in order: ledger record, role, index entry. A ledger
// failure leaves the index entry in place so the reconciler retries on its
// next tick; role removal tolerates "already absent". Returns whether a
// record existed anywhere.
func (uc *MuteUsecase) Lift(ctx context.Context, guildID, memberID, roleID string) (bool, error) {
	existed, err := uc.ledger.Delete(ctx, memberID)
	if err != nil {
		return false, err
	}

	if roleID != "" {
		has, hasErr := uc.platform.HasRole(ctx, guildID, memberID, roleID)
		if hasErr == nil && has {
			_ = uc.platform.RemoveRole(ctx, guildID, memberID, roleID)
		}
	}

	uc.mu.Lock()
	_, inIndex := uc.index[memberID]
	delete(uc.index, memberID)
	uc.mu.Unlock()

	return inIndex || existed, nil
}

// Get returns the member's active punishment from the index, or nil.
func (uc *MuteUsecase) Get(memberID string) *domain.Punishment {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.index[memberID]
}

// IsMuted reports whether the member has an active punishment.
func (uc *MuteUsecase) IsMuted(memberID string) bool {
	return uc.Get(memberID) != nil
}

// Snapshot returns a defensive copy of the index so the reconciler can
// iterate without racing concurrent mute issuance.
func (uc *MuteUsecase) Snapshot() map[string]*domain.Punishment {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	snapshot := make(map[string]*domain.Punishment, len(uc.index))
	for memberID, p := range uc.index {
		snapshot[memberID] = p
	}
	return snapshot
}
