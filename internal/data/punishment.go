package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// punishmentRepo implements the punishment ledger
type punishmentRepo struct {
	db *sql.DB
}

// NewPunishmentRepo creates a new punishment ledger repository
func NewPunishmentRepo(dbPath string) (repo.PunishmentRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS mutes (
			member_id TEXT PRIMARY KEY,
			guild_id TEXT NOT NULL,
			moderator_id TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			duration_seconds INTEGER
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_mutes_guild_id ON mutes(guild_id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &punishmentRepo{db: db}, nil
}

// Put upserts a punishment keyed by member, replacing any prior record
func (r *punishmentRepo) Put(ctx context.Context, p *domain.Punishment) error {
	var duration sql.NullInt64
	if p.Duration != nil {
		duration = sql.NullInt64{Int64: int64(p.Duration.Seconds()), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO mutes (member_id, guild_id, moderator_id, reason, created_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		p.MemberID,
		p.GuildID,
		p.ModeratorID,
		p.Reason,
		p.CreatedAt.Unix(),
		duration,
	)
	if err != nil {
		return fmt.Errorf("failed to save punishment: %w", err)
	}
	return nil
}

// Get returns the member's punishment, or (nil, nil) if absent
func (r *punishmentRepo) Get(ctx context.Context, memberID string) (*domain.Punishment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT member_id, guild_id, moderator_id, reason, created_at, duration_seconds
		FROM mutes
		WHERE member_id = ?
	`, memberID)

	p, err := scanPunishment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query punishment: %w", err)
	}
	return p, nil
}

// Delete removes the member's punishment, reporting whether one existed
func (r *punishmentRepo) Delete(ctx context.Context, memberID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mutes WHERE member_id = ?`, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to delete punishment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListAll returns every stored punishment
func (r *punishmentRepo) ListAll(ctx context.Context) ([]*domain.Punishment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT member_id, guild_id, moderator_id, reason, created_at, duration_seconds
		FROM mutes
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list punishments: %w", err)
	}
	defer rows.Close()

	var punishments []*domain.Punishment
	for rows.Next() {
		p, err := scanPunishment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punishment: %w", err)
		}
		punishments = append(punishments, p)
	}
	return punishments, rows.Err()
}

// Close closes the database connection
func (r *punishmentRepo) Close() error {
	return r.db.Close()
}

func scanPunishment(scan func(dest ...any) error) (*domain.Punishment, error) {
	var p domain.Punishment
	var createdAt int64
	var duration sql.NullInt64
	if err := scan(&p.MemberID, &p.GuildID, &p.ModeratorID, &p.Reason, &createdAt, &duration); err != nil {
		return nil, err
	}

	p.CreatedAt = time.Unix(createdAt, 0)
	if duration.Valid {
		d := time.Duration(duration.Int64) * time.Second
		p.Duration = &d
	}
	return &p, nil
}
