package repository

import (
	"context"

	"github.com/google/uuid"
)

// Entry is one do-not-call phone number.
type Entry struct {
	ID        uuid.UUID
	Phone     string
	Reason    *string
	Source    *string
	AddedBy   *uuid.UUID
	CreatedAt string
}

// CreateParams contains parameters for adding a DNC entry.
type CreateParams struct {
	Phone   string
	Reason  *string
	Source  *string
	AddedBy *uuid.UUID
}

// Repository provides DNC list persistence.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, params CreateParams) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IsOnList(ctx context.Context, phone string) (bool, error)
	ListPhones(ctx context.Context) ([]string, error)
}
