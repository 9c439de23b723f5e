// Package service implements call log business logic.
package service

import (
	"context"

	"recruit_portal_backend/internal/calls/repository"
	"recruit_portal_backend/internal/events"

	"github.com/google/uuid"
)

// Service implements call log use cases.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates the calls service.
func New(repo repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns calls matching the filter.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Call, error) {
	return s.repo.List(ctx, filter)
}

// Get returns one call by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Call, error) {
	return s.repo.GetByID(ctx, id)
}

// Create records a call and publishes it when it carries an outcome.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Call, error) {
	call, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Call{}, err
	}

	if call.Outcome != nil {
		s.bus.Publish(ctx, events.CallRecorded{
			BaseEvent:  events.NewBaseEvent(),
			CallID:     call.ID,
			CampaignID: call.CampaignID,
			Outcome:    *call.Outcome,
		})
	}
	return call, nil
}

// Update applies a partial update to a call.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Call, error) {
	return s.repo.Update(ctx, params)
}
