// Package service implements candidate business logic.
package service

import (
	"context"

	"recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/storage"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/phone"

	"github.com/google/uuid"
)

// Service implements candidate use cases.
type Service struct {
	repo        repository.Repository
	cvStore     storage.CVStore // nil when storage is not configured
	bus         events.Bus
	phoneRegion string
}

// New creates the candidates service. cvStore may be nil.
func New(repo repository.Repository, cvStore storage.CVStore, bus events.Bus, phoneRegion string) *Service {
	return &Service{repo: repo, cvStore: cvStore, bus: bus, phoneRegion: phoneRegion}
}

// List returns all candidates, optionally filtered by vacancy.
func (s *Service) List(ctx context.Context, vacancyID *uuid.UUID) ([]repository.Candidate, error) {
	if vacancyID != nil {
		return s.repo.ListByVacancy(ctx, *vacancyID)
	}
	return s.repo.List(ctx)
}

// Get returns one candidate by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new candidate with a normalized phone number.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Candidate, error) {
	params.Phone = phone.NormalizeE164Region(params.Phone, s.phoneRegion)
	if params.Status == "" {
		params.Status = "new"
	}
	if params.ConsentStatus == "" {
		params.ConsentStatus = "pending"
	}

	candidate, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Candidate{}, err
	}

	s.bus.Publish(ctx, events.EntityCreated{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "candidate",
		EntityID:   candidate.ID,
	})
	return candidate, nil
}

// Update applies a partial update, normalizing the phone when it changes.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Candidate, error) {
	if params.Phone != nil {
		normalized := phone.NormalizeE164Region(*params.Phone, s.phoneRegion)
		params.Phone = &normalized
	}
	return s.repo.Update(ctx, params)
}

// Delete removes a candidate and publishes its removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityDeleted{
		BaseEvent:  events.NewBaseEvent(),
		EntityType: "candidate",
		EntityID:   id,
	})
	return nil
}

// CVUploadURL issues a presigned upload URL and records the resulting file
// key on the candidate.
func (s *Service) CVUploadURL(ctx context.Context, id uuid.UUID, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error) {
	if s.cvStore == nil {
		return nil, apperr.BadRequest("CV storage is not configured")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	presigned, err := s.cvStore.GenerateUploadURL(ctx, id.String(), fileName, contentType, sizeBytes)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, repository.UpdateParams{ID: id, CVUrl: &presigned.FileKey}); err != nil {
		return nil, err
	}
	return presigned, nil
}

// CVDownloadURL issues a presigned download URL for the candidate's CV.
func (s *Service) CVDownloadURL(ctx context.Context, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.cvStore == nil {
		return nil, apperr.BadRequest("CV storage is not configured")
	}

	candidate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate.CVUrl == nil || *candidate.CVUrl == "" {
		return nil, apperr.NotFound("candidate has no CV on file")
	}

	return s.cvStore.GenerateDownloadURL(ctx, *candidate.CVUrl)
}
