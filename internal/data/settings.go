package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wardenbot/warden/internal/biz/domain"
	"github.com/wardenbot/warden/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// settingsRepo implements the guild settings store.
// Words and the spam whitelist live in child tables so add/remove/clear
// map to row operations.
type settingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new guild settings repository
func NewSettingsRepo(dbPath string) (repo.SettingsRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS guild_settings (
			guild_id TEXT PRIMARY KEY,
			profanity_enabled INTEGER NOT NULL DEFAULT 0,
			spam_enabled INTEGER NOT NULL DEFAULT 0,
			mute_role_id TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS guild_words (
			guild_id TEXT NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (guild_id, word)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create words table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS spam_whitelist (
			guild_id TEXT NOT NULL,
			member_id TEXT NOT NULL,
			PRIMARY KEY (guild_id, member_id)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create whitelist table: %w", err)
	}

	return &settingsRepo{db: db}, nil
}

// Get returns the guild's settings, or (nil, nil) if none stored yet
func (r *settingsRepo) Get(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT guild_id, profanity_enabled, spam_enabled, mute_role_id
		FROM guild_settings
		WHERE guild_id = ?
	`, guildID)

	var settings domain.GuildSettings
	var profanityEnabled, spamEnabled int
	err := row.Scan(&settings.GuildID, &profanityEnabled, &spamEnabled, &settings.MuteRoleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	settings.ProfanityEnabled = profanityEnabled != 0
	settings.SpamEnabled = spamEnabled != 0

	settings.Words, err = r.listColumn(ctx, `SELECT word FROM guild_words WHERE guild_id = ? ORDER BY word`, guildID)
	if err != nil {
		return nil, err
	}
	settings.SpamWhitelist, err = r.listColumn(ctx, `SELECT member_id FROM spam_whitelist WHERE guild_id = ? ORDER BY member_id`, guildID)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// SetProfanityEnabled toggles the profanity filter
func (r *settingsRepo) SetProfanityEnabled(ctx context.Context, guildID string, enabled bool) error {
	return r.setFlag(ctx, guildID, "profanity_enabled", enabled)
}

// SetSpamEnabled toggles the spam filter
func (r *settingsRepo) SetSpamEnabled(ctx context.Context, guildID string, enabled bool) error {
	return r.setFlag(ctx, guildID, "spam_enabled", enabled)
}

// SetMuteRole stores the guild's designated mute role
func (r *settingsRepo) SetMuteRole(ctx context.Context, guildID, roleID string) error {
	if err := r.ensureRow(ctx, guildID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE guild_settings SET mute_role_id = ? WHERE guild_id = ?
	`, roleID, guildID)
	if err != nil {
		return fmt.Errorf("failed to set mute role: %w", err)
	}
	return nil
}

// AddWord registers a custom banned word
func (r *settingsRepo) AddWord(ctx context.Context, guildID, word string) error {
	if err := r.ensureRow(ctx, guildID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO guild_words (guild_id, word) VALUES (?, ?)
	`, guildID, word)
	if err != nil {
		return fmt.Errorf("failed to add word: %w", err)
	}
	return nil
}

// RemoveWord unregisters a custom banned word
func (r *settingsRepo) RemoveWord(ctx context.Context, guildID, word string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM guild_words WHERE guild_id = ? AND word = ?
	`, guildID, word)
	if err != nil {
		return false, fmt.Errorf("failed to remove word: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ClearWords removes every custom banned word for the guild
func (r *settingsRepo) ClearWords(ctx context.Context, guildID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM guild_words WHERE guild_id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("failed to clear words: %w", err)
	}
	return nil
}

// AddWhitelist exempts a member from spam enforcement
func (r *settingsRepo) AddWhitelist(ctx context.Context, guildID, memberID string) error {
	if err := r.ensureRow(ctx, guildID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO spam_whitelist (guild_id, member_id) VALUES (?, ?)
	`, guildID, memberID)
	if err != nil {
		return fmt.Errorf("failed to add whitelist entry: %w", err)
	}
	return nil
}

// RemoveWhitelist removes a member's spam exemption
func (r *settingsRepo) RemoveWhitelist(ctx context.Context, guildID, memberID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM spam_whitelist WHERE guild_id = ? AND member_id = ?
	`, guildID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to remove whitelist entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// Close closes the database connection
func (r *settingsRepo) Close() error {
	return r.db.Close()
}

func (r *settingsRepo) setFlag(ctx context.Context, guildID, column string, enabled bool) error {
	if err := r.ensureRow(ctx, guildID); err != nil {
		return err
	}
	value := 0
	if enabled {
		value = 1
	}
	// column is one of two fixed names, never user input
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE guild_settings SET %s = ? WHERE guild_id = ?`, column),
		value, guildID)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	return nil
}

func (r *settingsRepo) ensureRow(ctx context.Context, guildID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO guild_settings (guild_id) VALUES (?)
	`, guildID)
	if err != nil {
		return fmt.Errorf("failed to ensure settings row: %w", err)
	}
	return nil
}

func (r *settingsRepo) listColumn(ctx context.Context, query, guildID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan list value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
