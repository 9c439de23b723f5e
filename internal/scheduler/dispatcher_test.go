package scheduler

import (
	"context"
	"testing"
	"time"

	campaignsrepo "recruit_portal_backend/internal/campaigns/repository"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/telephony"
	vacrepo "recruit_portal_backend/internal/vacancies/repository"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeCampaignRepo struct {
	campaignsrepo.Repository
	campaigns map[uuid.UUID]campaignsrepo.Campaign
	due       []campaignsrepo.CandidateLink
	recorded  []campaignsrepo.CompletedCallParams
	retries   []uuid.UUID
	completed bool
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (campaignsrepo.Campaign, error) {
	if c, ok := f.campaigns[id]; ok {
		return c, nil
	}
	return campaignsrepo.Campaign{}, apperr.NotFound("campaign not found")
}

func (f *fakeCampaignRepo) ListDuePending(ctx context.Context, campaignID uuid.UUID) ([]campaignsrepo.CandidateLink, error) {
	return f.due, nil
}

func (f *fakeCampaignRepo) ScheduleRetry(ctx context.Context, linkID uuid.UUID, delayMinutes int) error {
	f.retries = append(f.retries, linkID)
	return nil
}

func (f *fakeCampaignRepo) RecordCompletedCall(ctx context.Context, params campaignsrepo.CompletedCallParams) (campaignsrepo.Campaign, error) {
	f.recorded = append(f.recorded, params)
	c := f.campaigns[params.CampaignID]
	c.CompletedCalls++
	if params.Outcome == "interested" {
		c.SuccessfulCalls++
	} else {
		c.FailedCalls++
	}
	f.campaigns[params.CampaignID] = c
	return c, nil
}

func (f *fakeCampaignRepo) MarkCompleted(ctx context.Context, id uuid.UUID) (campaignsrepo.Campaign, error) {
	f.completed = true
	c := f.campaigns[id]
	c.Status = "completed"
	f.campaigns[id] = c
	return c, nil
}

type fakeCandidates struct {
	candidates map[uuid.UUID]candrepo.Candidate
}

func (f *fakeCandidates) GetByID(ctx context.Context, id uuid.UUID) (candrepo.Candidate, error) {
	if c, ok := f.candidates[id]; ok {
		return c, nil
	}
	return candrepo.Candidate{}, apperr.NotFound("candidate not found")
}

type fakeVacancies struct{}

func (fakeVacancies) GetByID(ctx context.Context, id uuid.UUID) (vacrepo.Vacancy, error) {
	return vacrepo.Vacancy{ID: id, Title: "Senior Engineer"}, nil
}

type openGate struct{}

func (openGate) FilterEligible(ctx context.Context, list []candrepo.Candidate) ([]candrepo.Candidate, error) {
	eligible := make([]candrepo.Candidate, 0, len(list))
	for _, c := range list {
		if !c.IsDnc && c.ConsentStatus == "granted" {
			eligible = append(eligible, c)
		}
	}
	return eligible, nil
}

type scriptedProvider struct {
	outcome string
	placed  []telephony.CallParams
}

func (p *scriptedProvider) PlaceCall(ctx context.Context, params telephony.CallParams) (telephony.CallReport, error) {
	p.placed = append(p.placed, params)
	return telephony.CallReport{ProviderCallID: "call-1", Outcome: p.outcome}, nil
}

type fakeRequeue struct {
	delays []time.Duration
}

func (f *fakeRequeue) EnqueueDispatchIn(ctx context.Context, campaignID uuid.UUID, delay time.Duration) error {
	f.delays = append(f.delays, delay)
	return nil
}

type dispatchFixture struct {
	dispatcher *Dispatcher
	repo       *fakeCampaignRepo
	provider   *scriptedProvider
	requeue    *fakeRequeue
}

func newDispatchFixture(t *testing.T, campaign campaignsrepo.Campaign,
	candidates []candrepo.Candidate, outcome string, now time.Time) *dispatchFixture {
	t.Helper()

	repo := &fakeCampaignRepo{campaigns: map[uuid.UUID]campaignsrepo.Campaign{campaign.ID: campaign}}
	reader := &fakeCandidates{candidates: map[uuid.UUID]candrepo.Candidate{}}
	for _, c := range candidates {
		reader.candidates[c.ID] = c
		repo.due = append(repo.due, campaignsrepo.CandidateLink{
			ID:          uuid.New(),
			CampaignID:  campaign.ID,
			CandidateID: c.ID,
			Status:      "pending",
		})
	}

	provider := &scriptedProvider{outcome: outcome}
	requeue := &fakeRequeue{}
	log := logger.New("development")

	dispatcher := NewDispatcher(repo, reader, fakeVacancies{}, openGate{}, provider,
		requeue, events.NewInMemoryBus(log), log)
	dispatcher.now = func() time.Time { return now }

	return &dispatchFixture{dispatcher: dispatcher, repo: repo, provider: provider, requeue: requeue}
}

func runningCampaign() campaignsrepo.Campaign {
	return campaignsrepo.Campaign{
		ID:                 uuid.New(),
		Name:               "live outreach",
		Status:             "running",
		MaxConcurrentCalls: 3,
		RetryLimit:         2,
		RetryDelayMinutes:  15,
	}
}

func callableCandidate(name string) candrepo.Candidate {
	return candrepo.Candidate{
		ID:            uuid.New(),
		Name:          name,
		Phone:         "+14155550100",
		ConsentStatus: "granted",
	}
}

func TestDispatchRecordsCompletedCalls(t *testing.T) {
	campaign := runningCampaign()
	campaign.TotalCandidates = 2
	candidates := []candrepo.Candidate{callableCandidate("a"), callableCandidate("b")}
	fx := newDispatchFixture(t, campaign, candidates, "interested",
		mustTime(t, "2026-08-26T12:00:00Z"))

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}

	if len(fx.provider.placed) != 2 {
		t.Fatalf("placed %d calls, want 2", len(fx.provider.placed))
	}
	if len(fx.repo.recorded) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(fx.repo.recorded))
	}
	if !fx.repo.completed {
		t.Fatal("campaign not marked completed after all calls recorded")
	}

	final := fx.repo.campaigns[campaign.ID]
	if final.CompletedCalls != final.SuccessfulCalls+final.FailedCalls {
		t.Fatal("completedCalls != successfulCalls + failedCalls")
	}
}

func TestDispatchDefersOutsideCallWindow(t *testing.T) {
	campaign := runningCampaign()
	campaign.CallWindowStart = "09:00"
	campaign.CallWindowEnd = "17:00"
	fx := newDispatchFixture(t, campaign, []candrepo.Candidate{callableCandidate("a")}, "interested",
		mustTime(t, "2026-08-26T06:00:00Z"))

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}

	if len(fx.provider.placed) != 0 {
		t.Fatal("calls placed outside the call window")
	}
	if len(fx.requeue.delays) != 1 || fx.requeue.delays[0] != 3*time.Hour {
		t.Fatalf("requeue delays = %v, want [3h]", fx.requeue.delays)
	}
}

func TestDispatchRetriesNoAnswerUnderLimit(t *testing.T) {
	campaign := runningCampaign()
	campaign.TotalCandidates = 1
	fx := newDispatchFixture(t, campaign, []candrepo.Candidate{callableCandidate("a")}, "no_answer",
		mustTime(t, "2026-08-26T12:00:00Z"))

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}

	if len(fx.repo.retries) != 1 {
		t.Fatalf("scheduled %d retries, want 1", len(fx.repo.retries))
	}
	if len(fx.repo.recorded) != 0 {
		t.Fatal("retryable outcome was recorded as completed")
	}
	if len(fx.requeue.delays) != 1 || fx.requeue.delays[0] != 15*time.Minute {
		t.Fatalf("requeue delays = %v, want [15m]", fx.requeue.delays)
	}
	if fx.repo.completed {
		t.Fatal("campaign completed with a retry outstanding")
	}
}

func TestDispatchRecordsExhaustedRetriesAsFinal(t *testing.T) {
	campaign := runningCampaign()
	campaign.TotalCandidates = 1
	candidate := callableCandidate("a")
	fx := newDispatchFixture(t, campaign, []candrepo.Candidate{candidate}, "no_answer",
		mustTime(t, "2026-08-26T12:00:00Z"))
	fx.repo.due[0].Attempts = campaign.RetryLimit

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}

	if len(fx.repo.retries) != 0 {
		t.Fatal("retry scheduled past the retry limit")
	}
	if len(fx.repo.recorded) != 1 || fx.repo.recorded[0].Outcome != "no_answer" {
		t.Fatalf("recorded = %+v, want one final no_answer", fx.repo.recorded)
	}
}

func TestDispatchBlocksRevokedConsent(t *testing.T) {
	campaign := runningCampaign()
	campaign.TotalCandidates = 1
	revoked := callableCandidate("a")
	revoked.ConsentStatus = "revoked"
	fx := newDispatchFixture(t, campaign, []candrepo.Candidate{revoked}, "interested",
		mustTime(t, "2026-08-26T12:00:00Z"))

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}

	if len(fx.provider.placed) != 0 {
		t.Fatal("provider dialed a candidate with revoked consent")
	}
	if len(fx.repo.recorded) != 1 || fx.repo.recorded[0].Outcome != "opt_out" {
		t.Fatalf("recorded = %+v, want one opt_out", fx.repo.recorded)
	}
}

func TestDispatchSkipsNonRunningCampaign(t *testing.T) {
	campaign := runningCampaign()
	campaign.Status = "paused"
	fx := newDispatchFixture(t, campaign, []candrepo.Candidate{callableCandidate("a")}, "interested",
		mustTime(t, "2026-08-26T12:00:00Z"))

	if err := fx.dispatcher.HandleDispatch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("HandleDispatch() error: %v", err)
	}
	if len(fx.provider.placed) != 0 {
		t.Fatal("calls placed for a paused campaign")
	}
}
