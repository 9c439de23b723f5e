package repository

import (
	"context"

	"github.com/google/uuid"
)

// Event is one recorded inbound webhook delivery.
type Event struct {
	ID           uuid.UUID
	EventID      string
	Source       string
	EventType    string
	Payload      map[string]any
	Processed    bool
	ProcessedAt  *string
	ErrorMessage *string
	CreatedAt    string
}

// RecordParams contains parameters for recording a delivery.
type RecordParams struct {
	EventID   string
	Source    string
	EventType string
	Payload   map[string]any
}

// Repository is the webhook idempotency ledger. The event id is unique at
// the store; recording a duplicate is a no-op.
type Repository interface {
	HasEvent(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, params RecordParams) (Event, error)
	MarkProcessed(ctx context.Context, eventID string, errorMessage *string) error
}
