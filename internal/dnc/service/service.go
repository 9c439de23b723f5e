// Package service implements DNC list management and the consent gate
// applied before any outreach call.
package service

import (
	"context"

	candidates "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/dnc/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/phone"

	"github.com/google/uuid"
)

// ConsentGranted is the only consent status eligible for outreach.
const ConsentGranted = "granted"

// PhoneLister is the narrow repository view the gate needs.
type PhoneLister interface {
	ListPhones(ctx context.Context) ([]string, error)
}

// Service implements DNC use cases.
type Service struct {
	repo        repository.Repository
	bus         events.Bus
	phoneRegion string
}

// New creates the DNC service.
func New(repo repository.Repository, bus events.Bus, phoneRegion string) *Service {
	return &Service{repo: repo, bus: bus, phoneRegion: phoneRegion}
}

// List returns all DNC entries.
func (s *Service) List(ctx context.Context) ([]repository.Entry, error) {
	return s.repo.List(ctx)
}

// Add puts a normalized phone number on the DNC list.
func (s *Service) Add(ctx context.Context, params repository.CreateParams) (repository.Entry, error) {
	params.Phone = phone.NormalizeE164Region(params.Phone, s.phoneRegion)

	entry, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Entry{}, err
	}

	event := events.DncEntryAdded{
		BaseEvent: events.NewBaseEvent(),
		EntryID:   entry.ID,
		Phone:     entry.Phone,
	}
	if entry.Source != nil {
		event.Source = *entry.Source
	}
	s.bus.Publish(ctx, event)

	return entry, nil
}

// Remove deletes a DNC entry so the number can be called again.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Check reports whether a phone number is on the DNC list. The number is
// normalized first so formatting variants match.
func (s *Service) Check(ctx context.Context, rawPhone string) (bool, error) {
	return s.repo.IsOnList(ctx, phone.NormalizeE164Region(rawPhone, s.phoneRegion))
}

// FilterEligible keeps only candidates that may be called: not flagged DNC,
// consent granted, and phone absent from the DNC list.
func FilterEligible(ctx context.Context, phones PhoneLister, list []candidates.Candidate) ([]candidates.Candidate, error) {
	dncPhones, err := phones.ListPhones(ctx)
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]bool, len(dncPhones))
	for _, p := range dncPhones {
		blocked[p] = true
	}

	eligible := make([]candidates.Candidate, 0, len(list))
	for _, candidate := range list {
		if candidate.IsDnc {
			continue
		}
		if candidate.ConsentStatus != ConsentGranted {
			continue
		}
		if blocked[candidate.Phone] {
			continue
		}
		eligible = append(eligible, candidate)
	}
	return eligible, nil
}

// FilterEligible is the method form used by the campaign executor.
func (s *Service) FilterEligible(ctx context.Context, list []candidates.Candidate) ([]candidates.Candidate, error) {
	return FilterEligible(ctx, s.repo, list)
}
