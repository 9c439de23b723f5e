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

const entryNotFoundMessage = "dnc entry not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new DNC repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all DNC entries, newest first.
func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	query := `SELECT id, phone, reason, source, added_by, created_at FROM dnc_list ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dnc entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.Phone, &e.Reason, &e.Source, &e.AddedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scan dnc entry: %w", err)
		}
		e.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dnc entries: %w", err)
	}
	return entries, nil
}

// Create adds a phone number to the DNC list. Re-adding an existing number
// returns a conflict.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Entry, error) {
	query := `
		INSERT INTO dnc_list (id, phone, reason, source, added_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone) DO NOTHING
		RETURNING id, phone, reason, source, added_by, created_at`

	var e Entry
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, query, uuid.New(), params.Phone, params.Reason, params.Source, params.AddedBy).
		Scan(&e.ID, &e.Phone, &e.Reason, &e.Source, &e.AddedBy, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.Conflict("phone number is already on the dnc list")
		}
		return Entry{}, fmt.Errorf("create dnc entry: %w", err)
	}

	e.CreatedAt = createdAt.Format(time.RFC3339)
	return e, nil
}

// Delete removes a DNC entry.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dnc_list WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dnc entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(entryNotFoundMessage)
	}
	return nil
}

// IsOnList reports whether the exact phone string is on the DNC list.
func (r *Repo) IsOnList(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM dnc_list WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check dnc list: %w", err)
	}
	return exists, nil
}

// ListPhones retrieves every phone on the list for bulk gating.
func (r *Repo) ListPhones(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT phone FROM dnc_list`)
	if err != nil {
		return nil, fmt.Errorf("list dnc phones: %w", err)
	}
	defer rows.Close()

	phones := make([]string, 0)
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("scan dnc phone: %w", err)
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dnc phones: %w", err)
	}
	return phones, nil
}
