package service

import (
	"context"
	"testing"

	candidates "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/dnc/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeDncRepo struct {
	entries map[uuid.UUID]repository.Entry
}

func newFakeDncRepo() *fakeDncRepo {
	return &fakeDncRepo{entries: map[uuid.UUID]repository.Entry{}}
}

func (f *fakeDncRepo) List(ctx context.Context) ([]repository.Entry, error) {
	out := make([]repository.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeDncRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Entry, error) {
	for _, e := range f.entries {
		if e.Phone == params.Phone {
			return repository.Entry{}, apperr.Conflict("phone number is already on the dnc list")
		}
	}
	entry := repository.Entry{ID: uuid.New(), Phone: params.Phone, Reason: params.Reason, Source: params.Source}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeDncRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return apperr.NotFound("dnc entry not found")
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeDncRepo) IsOnList(ctx context.Context, phone string) (bool, error) {
	for _, e := range f.entries {
		if e.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDncRepo) ListPhones(ctx context.Context) ([]string, error) {
	phones := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		phones = append(phones, e.Phone)
	}
	return phones, nil
}

func newService(repo repository.Repository) *Service {
	log := logger.New("development")
	return New(repo, events.NewInMemoryBus(log), "US")
}

type fakePhoneLister struct {
	phones []string
}

func (f *fakePhoneLister) ListPhones(ctx context.Context) ([]string, error) {
	return f.phones, nil
}

func candidate(name, phone, consent string, isDnc bool) candidates.Candidate {
	return candidates.Candidate{
		ID:            uuid.New(),
		Name:          name,
		Phone:         phone,
		ConsentStatus: consent,
		IsDnc:         isDnc,
	}
}

func TestCheckRemoveRecheck(t *testing.T) {
	svc := newService(newFakeDncRepo())
	ctx := context.Background()

	entry, err := svc.Add(ctx, repository.CreateParams{Phone: "(415) 555-0100"})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if entry.Phone != "+14155550100" {
		t.Fatalf("Add() stored %q, want normalized +14155550100", entry.Phone)
	}

	// Formatting variants must hit the same normalized entry.
	onList, err := svc.Check(ctx, "415-555-0100")
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !onList {
		t.Fatal("Check() = false for a listed number")
	}

	if err := svc.Remove(ctx, entry.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	onList, err = svc.Check(ctx, "(415) 555-0100")
	if err != nil {
		t.Fatalf("Check() error after remove: %v", err)
	}
	if onList {
		t.Fatal("Check() = true after the entry was removed")
	}
}

func TestRemoveUnknownEntry(t *testing.T) {
	svc := newService(newFakeDncRepo())

	err := svc.Remove(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Remove() error = %v, want not found", err)
	}
}

func TestFilterEligibleKeepsOnlyCallableCandidates(t *testing.T) {
	list := []candidates.Candidate{
		candidate("callable", "+14155550100", "granted", false),
		candidate("flagged dnc", "+14155550101", "granted", true),
		candidate("consent pending", "+14155550102", "pending", false),
		candidate("consent revoked", "+14155550103", "revoked", false),
		candidate("on dnc list", "+14155550104", "granted", false),
	}
	phones := &fakePhoneLister{phones: []string{"+14155550104"}}

	eligible, err := FilterEligible(context.Background(), phones, list)
	if err != nil {
		t.Fatalf("FilterEligible() error: %v", err)
	}

	if len(eligible) != 1 {
		t.Fatalf("FilterEligible() kept %d candidates, want 1", len(eligible))
	}
	if eligible[0].Name != "callable" {
		t.Fatalf("FilterEligible() kept %q, want callable", eligible[0].Name)
	}
}

func TestFilterEligibleEmptyInput(t *testing.T) {
	eligible, err := FilterEligible(context.Background(), &fakePhoneLister{}, nil)
	if err != nil {
		t.Fatalf("FilterEligible() error: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("FilterEligible() kept %d candidates, want 0", len(eligible))
	}
}

func TestFilterEligibleAllBlocked(t *testing.T) {
	list := []candidates.Candidate{
		candidate("a", "+14155550100", "granted", false),
		candidate("b", "+14155550101", "granted", false),
	}
	phones := &fakePhoneLister{phones: []string{"+14155550100", "+14155550101"}}

	eligible, err := FilterEligible(context.Background(), phones, list)
	if err != nil {
		t.Fatalf("FilterEligible() error: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("FilterEligible() kept %d candidates, want 0", len(eligible))
	}
}
