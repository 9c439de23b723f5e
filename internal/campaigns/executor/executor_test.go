package executor

import (
	"context"
	"fmt"
	"testing"

	callsrepo "recruit_portal_backend/internal/calls/repository"
	"recruit_portal_backend/internal/campaigns/repository"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeCampaignStore struct {
	campaigns map[uuid.UUID]repository.Campaign
	links     map[uuid.UUID][]repository.CandidateLink
	running   map[uuid.UUID]int
}

func (f *fakeCampaignStore) GetByID(ctx context.Context, id uuid.UUID) (repository.Campaign, error) {
	if c, ok := f.campaigns[id]; ok {
		return c, nil
	}
	return repository.Campaign{}, apperr.NotFound("campaign not found")
}

func (f *fakeCampaignStore) ListCandidateLinks(ctx context.Context, campaignID uuid.UUID) ([]repository.CandidateLink, error) {
	return f.links[campaignID], nil
}

func (f *fakeCampaignStore) SetRunning(ctx context.Context, id uuid.UUID, totalCandidates int) error {
	c := f.campaigns[id]
	c.Status = "running"
	c.TotalCandidates = totalCandidates
	f.campaigns[id] = c
	if f.running == nil {
		f.running = make(map[uuid.UUID]int)
	}
	f.running[id] = totalCandidates
	return nil
}

func (f *fakeCampaignStore) FinishMockExecution(ctx context.Context, id uuid.UUID, completed, successful, failed int) (repository.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return repository.Campaign{}, apperr.NotFound("campaign not found")
	}
	c.Status = "completed"
	c.CompletedCalls = completed
	c.SuccessfulCalls = successful
	c.FailedCalls = failed
	f.campaigns[id] = c
	return c, nil
}

type fakeCallWriter struct {
	created []callsrepo.CreateParams
	failAt  int // 0 means never fail
}

func (f *fakeCallWriter) Create(ctx context.Context, params callsrepo.CreateParams) (callsrepo.Call, error) {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return callsrepo.Call{}, fmt.Errorf("insert failed")
	}
	f.created = append(f.created, params)
	return callsrepo.Call{ID: uuid.New()}, nil
}

type fakeCandidateReader struct {
	candidates map[uuid.UUID]candrepo.Candidate
}

func (f *fakeCandidateReader) GetByID(ctx context.Context, id uuid.UUID) (candrepo.Candidate, error) {
	if c, ok := f.candidates[id]; ok {
		return c, nil
	}
	return candrepo.Candidate{}, apperr.NotFound("candidate not found")
}

type passAllGate struct{}

func (passAllGate) FilterEligible(ctx context.Context, list []candrepo.Candidate) ([]candrepo.Candidate, error) {
	eligible := make([]candrepo.Candidate, 0, len(list))
	for _, c := range list {
		if !c.IsDnc && c.ConsentStatus == "granted" {
			eligible = append(eligible, c)
		}
	}
	return eligible, nil
}

type fakeMockMode struct{ enabled bool }

func (f fakeMockMode) MockMode(ctx context.Context) (bool, error) { return f.enabled, nil }

type fakeDispatcher struct {
	enqueued []uuid.UUID
}

func (f *fakeDispatcher) EnqueueDispatch(ctx context.Context, campaignID uuid.UUID) error {
	f.enqueued = append(f.enqueued, campaignID)
	return nil
}

type fakeProvider struct{ enabled bool }

func (f fakeProvider) IsVapiEnabled() bool { return f.enabled }

type fixture struct {
	executor   *Executor
	store      *fakeCampaignStore
	calls      *fakeCallWriter
	dispatcher *fakeDispatcher
}

func newFixture(t *testing.T, campaign repository.Campaign, candidates []candrepo.Candidate, mockMode, providerOn bool) *fixture {
	t.Helper()

	store := &fakeCampaignStore{
		campaigns: map[uuid.UUID]repository.Campaign{campaign.ID: campaign},
		links:     map[uuid.UUID][]repository.CandidateLink{},
	}
	reader := &fakeCandidateReader{candidates: map[uuid.UUID]candrepo.Candidate{}}
	for _, c := range candidates {
		reader.candidates[c.ID] = c
		store.links[campaign.ID] = append(store.links[campaign.ID], repository.CandidateLink{
			ID:          uuid.New(),
			CampaignID:  campaign.ID,
			CandidateID: c.ID,
			Status:      "pending",
		})
	}

	calls := &fakeCallWriter{}
	dispatcher := &fakeDispatcher{}
	log := logger.New("development")

	return &fixture{
		executor: New(store, calls, reader, passAllGate{}, fakeMockMode{enabled: mockMode},
			dispatcher, fakeProvider{enabled: providerOn}, events.NewInMemoryBus(log), log),
		store:      store,
		calls:      calls,
		dispatcher: dispatcher,
	}
}

func grantedCandidate(name string) candrepo.Candidate {
	return candrepo.Candidate{
		ID:            uuid.New(),
		Name:          name,
		Phone:         "+14155550100",
		ConsentStatus: "granted",
	}
}

func TestMockLaunchThreeCandidates(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Name: "Q3 outreach", Status: "draft", TotalCandidates: 3}
	candidates := []candrepo.Candidate{grantedCandidate("a"), grantedCandidate("b"), grantedCandidate("c")}
	fx := newFixture(t, campaign, candidates, true, false)

	result, err := fx.executor.Launch(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if !result.Success || !result.MockMode {
		t.Fatalf("Launch() result = %+v, want mock success", result)
	}
	if result.CallsCreated != 3 {
		t.Fatalf("Launch() callsCreated = %d, want 3", result.CallsCreated)
	}

	// Outcome cycle: interested, not_interested, no_answer.
	wantOutcomes := []string{"interested", "not_interested", "no_answer"}
	if len(fx.calls.created) != 3 {
		t.Fatalf("created %d calls, want 3", len(fx.calls.created))
	}
	for i, call := range fx.calls.created {
		if *call.Outcome != wantOutcomes[i] {
			t.Errorf("call %d outcome = %q, want %q", i, *call.Outcome, wantOutcomes[i])
		}
		wantVapiID := fmt.Sprintf("mock-%s-%d", campaign.ID, i)
		if *call.VapiCallID != wantVapiID {
			t.Errorf("call %d vapiCallId = %q, want %q", i, *call.VapiCallID, wantVapiID)
		}
		if *call.Duration < 30 || *call.Duration >= 630 {
			t.Errorf("call %d duration = %d, want [30, 630)", i, *call.Duration)
		}
		if *call.Confidence < 70 || *call.Confidence >= 100 {
			t.Errorf("call %d confidence = %d, want [70, 100)", i, *call.Confidence)
		}
		if call.CandidateID == nil || *call.CandidateID != candidates[i].ID {
			t.Errorf("call %d not linked to attached candidate", i)
		}
	}

	final := fx.store.campaigns[campaign.ID]
	if final.Status != "completed" {
		t.Fatalf("campaign status = %q, want completed", final.Status)
	}
	if final.CompletedCalls != 3 || final.SuccessfulCalls != 1 || final.FailedCalls != 2 {
		t.Fatalf("counters = %d/%d/%d, want 3/1/2", final.CompletedCalls, final.SuccessfulCalls, final.FailedCalls)
	}
	if final.CompletedCalls != final.SuccessfulCalls+final.FailedCalls {
		t.Fatal("completedCalls != successfulCalls + failedCalls")
	}
}

func TestMockLaunchSurplusCallsUnlinked(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft", TotalCandidates: 5}
	candidates := []candrepo.Candidate{grantedCandidate("a"), grantedCandidate("b")}
	fx := newFixture(t, campaign, candidates, true, false)

	result, err := fx.executor.Launch(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if result.CallsCreated != 5 {
		t.Fatalf("callsCreated = %d, want 5", result.CallsCreated)
	}

	for i, call := range fx.calls.created {
		if i < 2 && call.CandidateID == nil {
			t.Errorf("call %d should link to an eligible candidate", i)
		}
		if i >= 2 && call.CandidateID != nil {
			t.Errorf("call %d should be unlinked", i)
		}
	}
}

func TestMockLaunchExcludesNonEligibleFromLinkage(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft", TotalCandidates: 1}
	blocked := grantedCandidate("blocked")
	blocked.IsDnc = true
	fx := newFixture(t, campaign, []candrepo.Candidate{blocked}, true, false)

	if _, err := fx.executor.Launch(context.Background(), campaign.ID); err != nil {
		t.Fatalf("Launch() error: %v", err)
	}

	if fx.calls.created[0].CandidateID != nil {
		t.Fatal("mock call linked to a DNC-flagged candidate")
	}
}

func TestLaunchMissingCampaign(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft"}
	fx := newFixture(t, campaign, nil, true, false)

	_, err := fx.executor.Launch(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Launch() error = %v, want not found", err)
	}
}

func TestLaunchRejectsTerminalCampaign(t *testing.T) {
	for _, status := range []string{"completed", "cancelled"} {
		campaign := repository.Campaign{ID: uuid.New(), Status: status, TotalCandidates: 1}
		fx := newFixture(t, campaign, []candrepo.Candidate{grantedCandidate("a")}, true, false)

		result, err := fx.executor.Launch(context.Background(), campaign.ID)
		if err != nil {
			t.Fatalf("Launch() error: %v", err)
		}
		if result.Success {
			t.Fatalf("Launch() succeeded for a %s campaign", status)
		}
		if len(fx.calls.created) != 0 {
			t.Fatalf("calls created relaunching a %s campaign", status)
		}
		if got := fx.store.campaigns[campaign.ID].Status; got != status {
			t.Fatalf("campaign status = %q after rejected launch, want %q", got, status)
		}
	}
}

func TestLiveLaunchWithoutProvider(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft"}
	fx := newFixture(t, campaign, []candrepo.Candidate{grantedCandidate("a")}, false, false)

	result, err := fx.executor.Launch(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if result.Success {
		t.Fatal("Launch() succeeded without a voice provider")
	}
	if len(fx.dispatcher.enqueued) != 0 {
		t.Fatal("dispatch enqueued without a voice provider")
	}
}

func TestLiveLaunchDispatches(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft"}
	candidates := []candrepo.Candidate{grantedCandidate("a"), grantedCandidate("b")}
	fx := newFixture(t, campaign, candidates, false, true)

	result, err := fx.executor.Launch(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if !result.Success || result.MockMode {
		t.Fatalf("Launch() result = %+v, want live success", result)
	}

	if got := fx.store.running[campaign.ID]; got != 2 {
		t.Fatalf("SetRunning total = %d, want 2", got)
	}
	if len(fx.dispatcher.enqueued) != 1 || fx.dispatcher.enqueued[0] != campaign.ID {
		t.Fatalf("dispatch enqueued = %v, want [%s]", fx.dispatcher.enqueued, campaign.ID)
	}
}

func TestLiveLaunchNoEligibleCandidates(t *testing.T) {
	campaign := repository.Campaign{ID: uuid.New(), Status: "draft"}
	revoked := grantedCandidate("revoked")
	revoked.ConsentStatus = "revoked"
	fx := newFixture(t, campaign, []candrepo.Candidate{revoked}, false, true)

	result, err := fx.executor.Launch(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if result.Success {
		t.Fatal("Launch() succeeded with no eligible candidates")
	}
	if len(fx.dispatcher.enqueued) != 0 {
		t.Fatal("dispatch enqueued with no eligible candidates")
	}
}
