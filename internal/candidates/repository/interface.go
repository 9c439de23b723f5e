package repository

import (
	"context"

	"github.com/google/uuid"
)

// Candidate is a person in the recruitment pipeline.
type Candidate struct {
	ID               uuid.UUID
	Name             string
	Email            *string
	Phone            string
	CVUrl            *string
	LinkedinURL      *string
	Tags             []string
	CustomFields     map[string]any
	Status           string
	VacancyID        *uuid.UUID
	ConsentStatus    string
	ConsentTimestamp *string
	ConsentSource    *string
	IsDnc            bool
	DncTimestamp     *string
	Notes            *string
	CreatedAt        string
	UpdatedAt        string
}

// CreateParams contains parameters for creating a candidate.
type CreateParams struct {
	Name          string
	Email         *string
	Phone         string
	CVUrl         *string
	LinkedinURL   *string
	Tags          []string
	CustomFields  map[string]any
	Status        string
	VacancyID     *uuid.UUID
	ConsentStatus string
	ConsentSource *string
	Notes         *string
}

// UpdateParams contains parameters for a partial candidate update.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID            uuid.UUID
	Name          *string
	Email         *string
	Phone         *string
	CVUrl         *string
	LinkedinURL   *string
	Tags          []string
	CustomFields  map[string]any
	Status        *string
	VacancyID     *uuid.UUID
	ConsentStatus *string
	ConsentSource *string
	IsDnc         *bool
	Notes         *string
}

// Repository provides candidate persistence.
type Repository interface {
	List(ctx context.Context) ([]Candidate, error)
	ListByVacancy(ctx context.Context, vacancyID uuid.UUID) ([]Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	Create(ctx context.Context, params CreateParams) (Candidate, error)
	Update(ctx context.Context, params UpdateParams) (Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
