// Package service implements campaign business logic.
package service

import (
	"context"

	"recruit_portal_backend/internal/campaigns/domain"
	"recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service implements campaign use cases.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates the campaigns service.
func New(repo repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns all campaigns.
func (s *Service) List(ctx context.Context) ([]repository.Campaign, error) {
	return s.repo.List(ctx)
}

// Get returns one campaign by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new campaign in draft unless a status is given.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Campaign, error) {
	if params.Status == "" {
		params.Status = string(domain.StatusDraft)
	}
	if !domain.Status(params.Status).Valid() {
		return repository.Campaign{}, apperr.Validation("unknown campaign status")
	}
	if params.TotalCandidates < 0 {
		return repository.Campaign{}, apperr.Validation("totalCandidates cannot be negative")
	}

	campaign, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Campaign{}, err
	}

	event := events.EntityCreated{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "campaign",
		EntityID:   campaign.ID,
	}
	if params.CreatedBy != nil {
		event.UserID = *params.CreatedBy
	}
	s.bus.Publish(ctx, event)

	return campaign, nil
}

// Update applies a partial update. Status changes must follow the lifecycle
// state machine; illegal transitions are rejected before any write.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Campaign, error) {
	if params.Status != nil {
		current, err := s.repo.GetByID(ctx, params.ID)
		if err != nil {
			return repository.Campaign{}, err
		}
		if err := domain.ValidateTransition(domain.Status(current.Status), domain.Status(*params.Status)); err != nil {
			return repository.Campaign{}, err
		}
	}
	return s.repo.Update(ctx, params)
}

// Delete removes a campaign and publishes its removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityDeleted{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "campaign",
		EntityID:   id,
	})
	return nil
}

// AttachCandidates links candidates to a campaign as pending dial work.
func (s *Service) AttachCandidates(ctx context.Context, campaignID uuid.UUID, candidateIDs []uuid.UUID) error {
	if len(candidateIDs) == 0 {
		return apperr.Validation("candidateIds is required")
	}
	return s.repo.AttachCandidates(ctx, campaignID, candidateIDs)
}

// ListCandidateLinks returns the campaign's candidate junction rows.
func (s *Service) ListCandidateLinks(ctx context.Context, campaignID uuid.UUID) ([]repository.CandidateLink, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.repo.ListCandidateLinks(ctx, campaignID)
}
