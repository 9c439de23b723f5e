// Package service implements settings business logic, including the
// mock-mode switch consulted by the campaign executor.
package service

import (
	"context"

	"recruit_portal_backend/internal/settings/repository"
	"recruit_portal_backend/platform/apperr"
)

// MockModeKey is the setting key deciding whether launches synthesize calls.
const MockModeKey = "mock_mode"

// Service implements settings use cases.
type Service struct {
	repo repository.Repository
}

// New creates the settings service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// List returns all settings.
func (s *Service) List(ctx context.Context) ([]repository.Setting, error) {
	return s.repo.List(ctx)
}

// Get returns one setting by key.
func (s *Service) Get(ctx context.Context, key string) (repository.Setting, error) {
	return s.repo.Get(ctx, key)
}

// Set upserts a setting.
func (s *Service) Set(ctx context.Context, key string, value any) (repository.Setting, error) {
	if key == "" {
		return repository.Setting{}, apperr.Validation("setting key is required")
	}
	return s.repo.Set(ctx, key, value)
}

// MockMode reports whether mock execution is on. Only a stored boolean true
// enables it; an unwritten or malformed setting reads as off, so a fresh
// install's launch fails with "no voice provider configured" instead of
// silently completing the campaign with synthesized calls.
func (s *Service) MockMode(ctx context.Context) (bool, error) {
	setting, err := s.repo.Get(ctx, MockModeKey)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}

	enabled, ok := setting.Value.(bool)
	return ok && enabled, nil
}

// SetMockMode writes the mock-mode switch.
func (s *Service) SetMockMode(ctx context.Context, enabled bool) error {
	_, err := s.repo.Set(ctx, MockModeKey, enabled)
	return err
}
