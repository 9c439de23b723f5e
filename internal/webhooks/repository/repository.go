// Package repository persists the webhook delivery ledger.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new webhook event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// HasEvent reports whether a delivery with this event id was already recorded.
func (r *Repo) HasEvent(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM webhook_events WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check webhook event: %w", err)
	}
	return exists, nil
}

// Record stores a delivery. A concurrent duplicate loses the insert race and
// gets the already-stored row back.
func (r *Repo) Record(ctx context.Context, params RecordParams) (Event, error) {
	query := `
		INSERT INTO webhook_events (id, event_id, source, event_type, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING id, event_id, source, event_type, payload, processed, processed_at, error_message, created_at`

	event, err := scanEvent(r.pool.QueryRow(ctx, query,
		uuid.New(), params.EventID, params.Source, params.EventType, params.Payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.getByEventID(ctx, params.EventID)
		}
		return Event{}, fmt.Errorf("record webhook event: %w", err)
	}
	return event, nil
}

// MarkProcessed stamps the delivery as handled, with an optional error note.
func (r *Repo) MarkProcessed(ctx context.Context, eventID string, errorMessage *string) error {
	query := `
		UPDATE webhook_events
		SET processed = true, processed_at = now(), error_message = $2
		WHERE event_id = $1`

	if _, err := r.pool.Exec(ctx, query, eventID, errorMessage); err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	return nil
}

func (r *Repo) getByEventID(ctx context.Context, eventID string) (Event, error) {
	query := `
		SELECT id, event_id, source, event_type, payload, processed, processed_at, error_message, created_at
		FROM webhook_events WHERE event_id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		return Event{}, fmt.Errorf("get webhook event: %w", err)
	}
	return event, nil
}

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	var createdAt time.Time
	var processedAt *time.Time

	err := row.Scan(&e.ID, &e.EventID, &e.Source, &e.EventType, &e.Payload,
		&e.Processed, &processedAt, &e.ErrorMessage, &createdAt)
	if err != nil {
		return Event{}, err
	}

	e.CreatedAt = createdAt.Format(time.RFC3339)
	if processedAt != nil {
		formatted := processedAt.Format(time.RFC3339)
		e.ProcessedAt = &formatted
	}
	return e, nil
}
