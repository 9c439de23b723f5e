package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit_portal_backend/platform/apperr"
)

const settingNotFoundMessage = "setting not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all settings.
func (r *Repo) List(ctx context.Context) ([]Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]Setting, 0)
	for rows.Next() {
		var s Setting
		var updatedAt time.Time
		if err := rows.Scan(&s.Key, &s.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		s.UpdatedAt = updatedAt.Format(time.RFC3339)
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

// Get retrieves one setting by key.
func (r *Repo) Get(ctx context.Context, key string) (Setting, error) {
	var s Setting
	var updatedAt time.Time

	err := r.pool.QueryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Setting{}, apperr.NotFound(settingNotFoundMessage)
		}
		return Setting{}, fmt.Errorf("get setting: %w", err)
	}

	s.UpdatedAt = updatedAt.Format(time.RFC3339)
	return s, nil
}

// Set upserts a setting; the last writer wins.
func (r *Repo) Set(ctx context.Context, key string, value any) (Setting, error) {
	query := `
		INSERT INTO settings (id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		RETURNING key, value, updated_at`

	var s Setting
	var updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, uuid.New(), key, value).Scan(&s.Key, &s.Value, &updatedAt)
	if err != nil {
		return Setting{}, fmt.Errorf("set setting: %w", err)
	}

	s.UpdatedAt = updatedAt.Format(time.RFC3339)
	return s, nil
}
