package repo

import (
	"context"

	"github.com/wardenbot/warden/internal/biz/domain"
)

// PunishmentRepo is the punishment ledger interface.
// The ledger is the authoritative record of active mutes; the in-memory
// index is rebuilt from it on startup.
type PunishmentRepo interface {
	// Put upserts a punishment keyed by member, replacing any prior record
	Put(ctx context.Context, p *domain.Punishment) error

	// Get returns the member's punishment, or (nil, nil) if absent
	Get(ctx context.Context, memberID string) (*domain.Punishment, error)

	// Delete removes the member's punishment, reporting whether one existed
	Delete(ctx context.Context, memberID string) (bool, error)

	// ListAll returns every stored punishment (startup recovery)
	ListAll(ctx context.Context) ([]*domain.Punishment, error)

	// Close closes the underlying store
	Close() error
}
