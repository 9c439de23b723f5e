package repository

import (
	"context"

	"github.com/google/uuid"
)

// Vacancy is an open position candidates are recruited for.
type Vacancy struct {
	ID           uuid.UUID
	Title        string
	Department   *string
	Location     *string
	Description  *string
	Requirements *string
	Salary       *string
	Status       string
	CreatedBy    *uuid.UUID
	CreatedAt    string
	UpdatedAt    string
}

// CreateParams contains parameters for creating a vacancy.
type CreateParams struct {
	Title        string
	Department   *string
	Location     *string
	Description  *string
	Requirements *string
	Salary       *string
	Status       string
	CreatedBy    *uuid.UUID
}

// UpdateParams contains parameters for a partial vacancy update.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID           uuid.UUID
	Title        *string
	Department   *string
	Location     *string
	Description  *string
	Requirements *string
	Salary       *string
	Status       *string
}

// Repository provides vacancy persistence.
type Repository interface {
	List(ctx context.Context) ([]Vacancy, error)
	GetByID(ctx context.Context, id uuid.UUID) (Vacancy, error)
	Create(ctx context.Context, params CreateParams) (Vacancy, error)
	Update(ctx context.Context, params UpdateParams) (Vacancy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
