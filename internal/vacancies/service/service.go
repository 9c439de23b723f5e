// Package service implements vacancy business logic.
package service

import (
	"context"

	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/vacancies/repository"

	"github.com/google/uuid"
)

// Service implements vacancy use cases.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates the vacancies service.
func New(repo repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns all vacancies.
func (s *Service) List(ctx context.Context) ([]repository.Vacancy, error) {
	return s.repo.List(ctx)
}

// Get returns one vacancy by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Vacancy, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new vacancy and publishes its creation.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Vacancy, error) {
	if params.Status == "" {
		params.Status = "draft"
	}

	vacancy, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Vacancy{}, err
	}

	event := events.EntityCreated{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "vacancy",
		EntityID:   vacancy.ID,
	}
	if params.CreatedBy != nil {
		event.UserID = *params.CreatedBy
	}
	s.bus.Publish(ctx, event)

	return vacancy, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Vacancy, error) {
	return s.repo.Update(ctx, params)
}

// Delete removes a vacancy and publishes its removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityDeleted{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "vacancy",
		EntityID:   id,
	})
	return nil
}
