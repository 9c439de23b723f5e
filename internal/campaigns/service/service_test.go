package service

import (
	"context"
	"testing"

	"recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	repository.Repository
	campaigns map[uuid.UUID]repository.Campaign
	updated   []repository.UpdateParams
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Campaign, error) {
	if c, ok := f.campaigns[id]; ok {
		return c, nil
	}
	return repository.Campaign{}, apperr.NotFound("campaign not found")
}

func (f *fakeRepo) Update(ctx context.Context, params repository.UpdateParams) (repository.Campaign, error) {
	f.updated = append(f.updated, params)
	c := f.campaigns[params.ID]
	if params.Status != nil {
		c.Status = *params.Status
	}
	f.campaigns[params.ID] = c
	return c, nil
}

func newService(campaigns ...repository.Campaign) (*Service, *fakeRepo) {
	repo := &fakeRepo{campaigns: make(map[uuid.UUID]repository.Campaign)}
	for _, c := range campaigns {
		repo.campaigns[c.ID] = c
	}
	return New(repo, events.NewInMemoryBus(logger.New("development"))), repo
}

func strPtr(s string) *string { return &s }

func TestUpdateAllowsLegalTransition(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "running"}
	svc, repo := newService(campaign)

	updated, err := svc.Update(context.Background(), repository.UpdateParams{
		ID:     campaign.ID,
		Status: strPtr("paused"),
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Status != "paused" {
		t.Fatalf("status = %q, want paused", updated.Status)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("repo.Update called %d times, want 1", len(repo.updated))
	}
}

func TestUpdateRejectsIllegalTransition(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "completed"}
	svc, repo := newService(campaign)

	_, err := svc.Update(context.Background(), repository.UpdateParams{
		ID:     campaign.ID,
		Status: strPtr("running"),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Update() error = %v, want validation", err)
	}
	if len(repo.updated) != 0 {
		t.Fatal("repo.Update was called for an illegal transition")
	}
}

func TestUpdateWithoutStatusSkipsTransitionCheck(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "completed"}
	svc, _ := newService(campaign)

	if _, err := svc.Update(context.Background(), repository.UpdateParams{
		ID:   campaign.ID,
		Name: strPtr("renamed"),
	}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
}

func TestCreateRejectsNegativeTotal(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), repository.CreateParams{
		Name:            "bad",
		TotalCandidates: -1,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Create() error = %v, want validation", err)
	}
}
