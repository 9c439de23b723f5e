package repository

import (
	"context"

	"github.com/google/uuid"
)

// User is a portal operator account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    string
	UpdatedAt    string
}

// CreateParams contains parameters for creating a user.
type CreateParams struct {
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

// Repository provides user persistence for the auth service.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, params CreateParams) (User, error)
}
