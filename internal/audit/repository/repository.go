// Package repository persists audit log entries.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one recorded audit action.
type Entry struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    map[string]any
	IPAddress  *string
	UserAgent  *string
	CreatedAt  string
}

// CreateParams contains parameters for recording an audit entry.
type CreateParams struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    map[string]any
	IPAddress  *string
	UserAgent  *string
}

// Repository provides audit log persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) error
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create appends an audit entry. The log is append-only.
func (r *Repo) Create(ctx context.Context, params CreateParams) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), params.UserID, params.Action, params.EntityType,
		params.EntityID, params.Details, params.IPAddress, params.UserAgent)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}
