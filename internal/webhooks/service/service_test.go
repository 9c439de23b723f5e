package service

import (
	"context"
	"testing"
	"time"

	callsrepo "recruit_portal_backend/internal/calls/repository"
	campaignsrepo "recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/webhooks/repository"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLedger struct {
	events    map[string]repository.Event
	processed map[string]*string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		events:    make(map[string]repository.Event),
		processed: make(map[string]*string),
	}
}

func (f *fakeLedger) HasEvent(ctx context.Context, eventID string) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

func (f *fakeLedger) Record(ctx context.Context, params repository.RecordParams) (repository.Event, error) {
	if existing, ok := f.events[params.EventID]; ok {
		return existing, nil
	}
	event := repository.Event{
		ID:        uuid.New(),
		EventID:   params.EventID,
		Source:    params.Source,
		EventType: params.EventType,
		Payload:   params.Payload,
	}
	f.events[params.EventID] = event
	return event, nil
}

func (f *fakeLedger) MarkProcessed(ctx context.Context, eventID string, errorMessage *string) error {
	f.processed[eventID] = errorMessage
	return nil
}

type fakeCallStore struct {
	calls   map[string]callsrepo.Call
	updated []callsrepo.UpdateParams
}

func (f *fakeCallStore) GetByVapiCallID(ctx context.Context, vapiCallID string) (callsrepo.Call, error) {
	if call, ok := f.calls[vapiCallID]; ok {
		return call, nil
	}
	return callsrepo.Call{}, apperr.NotFound("call not found")
}

func (f *fakeCallStore) Update(ctx context.Context, params callsrepo.UpdateParams) (callsrepo.Call, error) {
	f.updated = append(f.updated, params)
	return callsrepo.Call{ID: params.ID}, nil
}

type fakeCounters struct {
	campaign    campaignsrepo.Campaign
	incremented int
	completed   bool
}

func (f *fakeCounters) IncrementCallCounters(ctx context.Context, id uuid.UUID, successful bool) (campaignsrepo.Campaign, error) {
	f.incremented++
	f.campaign.CompletedCalls++
	if successful {
		f.campaign.SuccessfulCalls++
	} else {
		f.campaign.FailedCalls++
	}
	return f.campaign, nil
}

func (f *fakeCounters) MarkCompleted(ctx context.Context, id uuid.UUID) (campaignsrepo.Campaign, error) {
	f.completed = true
	f.campaign.Status = "completed"
	return f.campaign, nil
}

func newService(ledger *fakeLedger, calls *fakeCallStore, counters *fakeCounters) *Service {
	log := logger.New("development")
	svc := New(ledger, calls, counters, events.NewInMemoryBus(log), log)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestIngestDeduplicatesReplays(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, &fakeCallStore{}, &fakeCounters{})

	payload := map[string]any{"id": "evt-1", "type": "call"}

	first, err := svc.Ingest(context.Background(), SourceVapi, payload)
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if first.Duplicate {
		t.Fatal("first delivery flagged as duplicate")
	}

	second, err := svc.Ingest(context.Background(), SourceVapi, payload)
	if err != nil {
		t.Fatalf("Ingest() replay error: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("replay not flagged as duplicate")
	}
	if len(ledger.events) != 1 {
		t.Fatalf("ledger holds %d events, want 1", len(ledger.events))
	}
}

func TestIngestGeneratesEventIDWhenMissing(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, &fakeCallStore{}, &fakeCounters{})

	result, err := svc.Ingest(context.Background(), SourceTwilio, map[string]any{"From": "+14155550100"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if result.EventID != "twilio-1700000000000" {
		t.Fatalf("eventId = %q, want generated twilio id", result.EventID)
	}
}

func TestIngestUsesTwilioCallSid(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, &fakeCallStore{}, &fakeCounters{})

	result, err := svc.Ingest(context.Background(), SourceTwilio, map[string]any{"CallSid": "CA123"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if result.EventID != "CA123" {
		t.Fatalf("eventId = %q, want CA123", result.EventID)
	}
	if ledger.events["CA123"].EventType != "call_status" {
		t.Fatalf("eventType = %q, want call_status", ledger.events["CA123"].EventType)
	}
}

func TestCallEndedAppliesOutcomeAndCounters(t *testing.T) {
	campaignID := uuid.New()
	calls := &fakeCallStore{calls: map[string]callsrepo.Call{
		"vapi-call-1": {ID: uuid.New(), CampaignID: &campaignID},
	}}
	counters := &fakeCounters{campaign: campaignsrepo.Campaign{
		ID: campaignID, Status: "running", TotalCandidates: 2,
	}}
	svc := newService(newFakeLedger(), calls, counters)

	_, err := svc.Ingest(context.Background(), SourceVapi, map[string]any{
		"id":       "evt-1",
		"type":     "call-ended",
		"callId":   "vapi-call-1",
		"outcome":  "interested",
		"duration": float64(120),
	})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	if len(calls.updated) != 1 {
		t.Fatalf("call updated %d times, want 1", len(calls.updated))
	}
	if *calls.updated[0].Outcome != "interested" || *calls.updated[0].Duration != 120 {
		t.Fatalf("update params = %+v, want outcome/duration applied", calls.updated[0])
	}
	if counters.incremented != 1 {
		t.Fatalf("counters incremented %d times, want 1", counters.incremented)
	}
	if counters.campaign.SuccessfulCalls != 1 {
		t.Fatalf("successfulCalls = %d, want 1", counters.campaign.SuccessfulCalls)
	}
	if counters.completed {
		t.Fatal("campaign completed with calls still outstanding")
	}
}

func TestCallEndedCompletesCampaignOnLastCall(t *testing.T) {
	campaignID := uuid.New()
	calls := &fakeCallStore{calls: map[string]callsrepo.Call{
		"vapi-call-9": {ID: uuid.New(), CampaignID: &campaignID},
	}}
	counters := &fakeCounters{campaign: campaignsrepo.Campaign{
		ID: campaignID, Status: "running", TotalCandidates: 2, CompletedCalls: 1,
	}}
	svc := newService(newFakeLedger(), calls, counters)

	_, err := svc.Ingest(context.Background(), SourceVapi, map[string]any{
		"id":      "evt-2",
		"type":    "end-of-call-report",
		"callId":  "vapi-call-9",
		"outcome": "no_answer",
	})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if !counters.completed {
		t.Fatal("campaign not completed after the last call reported")
	}
}

func TestCallEndedUnknownCallStoredOnly(t *testing.T) {
	ledger := newFakeLedger()
	calls := &fakeCallStore{calls: map[string]callsrepo.Call{}}
	counters := &fakeCounters{}
	svc := newService(ledger, calls, counters)

	_, err := svc.Ingest(context.Background(), SourceVapi, map[string]any{
		"id":      "evt-3",
		"type":    "call-ended",
		"callId":  "never-seen",
		"outcome": "interested",
	})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	if len(ledger.events) != 1 {
		t.Fatal("delivery was not stored")
	}
	if len(calls.updated) != 0 || counters.incremented != 0 {
		t.Fatal("unknown call reference caused side effects")
	}
	if errMsg := ledger.processed["evt-3"]; errMsg != nil {
		t.Fatalf("processed with error %q, want none", *errMsg)
	}
}

func TestCallEndedSkipsCountersOnAlreadyScoredCall(t *testing.T) {
	campaignID := uuid.New()
	existing := "no_answer"
	calls := &fakeCallStore{calls: map[string]callsrepo.Call{
		"vapi-call-5": {ID: uuid.New(), CampaignID: &campaignID, Outcome: &existing},
	}}
	counters := &fakeCounters{campaign: campaignsrepo.Campaign{ID: campaignID, Status: "running", TotalCandidates: 5}}
	svc := newService(newFakeLedger(), calls, counters)

	_, err := svc.Ingest(context.Background(), SourceVapi, map[string]any{
		"id":      "evt-4",
		"type":    "call-ended",
		"callId":  "vapi-call-5",
		"outcome": "interested",
	})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if counters.incremented != 0 {
		t.Fatal("counters moved twice for the same call")
	}
}
