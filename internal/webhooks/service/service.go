// Package service ingests provider webhooks through the idempotency ledger
// and applies live call feedback to calls and campaign counters.
package service

import (
	"context"
	"fmt"
	"time"

	callsrepo "recruit_portal_backend/internal/calls/repository"
	campaignsrepo "recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/webhooks/repository"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Webhook sources.
const (
	SourceVapi   = "vapi"
	SourceTwilio = "twilio"
	SourceGhl    = "ghl"
)

// Result reports how a delivery was handled.
type Result struct {
	EventID   string
	Duplicate bool
}

// CallStore is the call persistence the feedback path needs.
type CallStore interface {
	GetByVapiCallID(ctx context.Context, vapiCallID string) (callsrepo.Call, error)
	Update(ctx context.Context, params callsrepo.UpdateParams) (callsrepo.Call, error)
}

// CampaignCounters applies finished-call feedback to campaign aggregates.
type CampaignCounters interface {
	IncrementCallCounters(ctx context.Context, id uuid.UUID, successful bool) (campaignsrepo.Campaign, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (campaignsrepo.Campaign, error)
}

// Service processes inbound webhooks.
type Service struct {
	ledger    repository.Repository
	calls     CallStore
	campaigns CampaignCounters
	bus       events.Bus
	log       *logger.Logger
	now       func() time.Time
}

// New creates the webhooks service.
func New(ledger repository.Repository, calls CallStore, campaigns CampaignCounters,
	bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		ledger:    ledger,
		calls:     calls,
		campaigns: campaigns,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
}

// Ingest records a delivery exactly once. Replays are acknowledged without
// side effects. Vapi call-ended events carrying a known call reference also
// feed the call outcome back into the campaign counters.
func (s *Service) Ingest(ctx context.Context, source string, payload map[string]any) (Result, error) {
	eventID, eventType := s.deriveEvent(source, payload)

	exists, err := s.ledger.HasEvent(ctx, eventID)
	if err != nil {
		return Result{}, err
	}
	if exists {
		s.log.WebhookEvent(source, eventID, true)
		return Result{EventID: eventID, Duplicate: true}, nil
	}

	if _, err := s.ledger.Record(ctx, repository.RecordParams{
		EventID:   eventID,
		Source:    source,
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		return Result{}, err
	}
	s.log.WebhookEvent(source, eventID, false)

	var processErr error
	if source == SourceVapi && isCallEnded(eventType) {
		processErr = s.applyCallEnded(ctx, payload)
	}

	var errMsg *string
	if processErr != nil {
		s.log.Error("webhook feedback failed", "source", source, "event_id", eventID, "error", processErr.Error())
		msg := processErr.Error()
		errMsg = &msg
	}
	if err := s.ledger.MarkProcessed(ctx, eventID, errMsg); err != nil {
		return Result{}, err
	}

	return Result{EventID: eventID}, nil
}

// deriveEvent extracts the provider event identity. Deliveries without one
// get a generated id, so they are stored but never deduplicated.
func (s *Service) deriveEvent(source string, payload map[string]any) (eventID, eventType string) {
	switch source {
	case SourceTwilio:
		eventID = stringField(payload, "CallSid")
		eventType = "call_status"
	case SourceGhl:
		eventID = stringField(payload, "id")
		eventType = stringField(payload, "type")
		if eventType == "" {
			eventType = "sync"
		}
	default:
		eventID = stringField(payload, "id")
		eventType = stringField(payload, "type")
		if eventType == "" {
			eventType = "call"
		}
	}
	if eventID == "" {
		eventID = fmt.Sprintf("%s-%d", source, s.now().UnixMilli())
	}
	return eventID, eventType
}

func isCallEnded(eventType string) bool {
	return eventType == "call-ended" || eventType == "end-of-call-report"
}

// applyCallEnded feeds a finished live call back into its records. Unknown
// call references are stored only.
func (s *Service) applyCallEnded(ctx context.Context, payload map[string]any) error {
	callID := stringField(payload, "callId")
	if callID == "" {
		if call, ok := payload["call"].(map[string]any); ok {
			callID = stringField(call, "id")
		}
	}
	if callID == "" {
		return nil
	}

	call, err := s.calls.GetByVapiCallID(ctx, callID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	params := callsrepo.UpdateParams{ID: call.ID}
	outcome := stringField(payload, "outcome")
	if outcome != "" {
		params.Outcome = &outcome
	}
	if duration, ok := intField(payload, "duration"); ok {
		params.Duration = &duration
	}
	if transcript := stringField(payload, "transcript"); transcript != "" {
		params.Transcript = &transcript
	}
	if summary := stringField(payload, "summary"); summary != "" {
		params.Summary = &summary
	}
	if sentiment := stringField(payload, "sentiment"); sentiment != "" {
		params.Sentiment = &sentiment
	}
	if confidence, ok := intField(payload, "confidence"); ok {
		params.Confidence = &confidence
	}

	if _, err := s.calls.Update(ctx, params); err != nil {
		return err
	}

	// Counters move only on the first outcome for this call.
	if call.CampaignID == nil || call.Outcome != nil || outcome == "" {
		return nil
	}

	campaign, err := s.campaigns.IncrementCallCounters(ctx, *call.CampaignID, outcome == "interested")
	if err != nil {
		return err
	}

	if campaign.Status == "running" && campaign.TotalCandidates > 0 &&
		campaign.CompletedCalls >= campaign.TotalCandidates {
		completed, err := s.campaigns.MarkCompleted(ctx, campaign.ID)
		if err != nil {
			return err
		}
		s.publishCompleted(ctx, completed)
	}
	return nil
}

func (s *Service) publishCompleted(ctx context.Context, campaign campaignsrepo.Campaign) {
	event := events.CampaignCompleted{
		BaseEvent:       events.NewBaseEvent(),
		CampaignID:      campaign.ID,
		CampaignName:    campaign.Name,
		CompletedCalls:  campaign.CompletedCalls,
		SuccessfulCalls: campaign.SuccessfulCalls,
		FailedCalls:     campaign.FailedCalls,
	}
	if campaign.CreatedBy != nil {
		event.CreatedBy = *campaign.CreatedBy
	}
	s.bus.Publish(ctx, event)
}

func stringField(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

func intField(payload map[string]any, key string) (int, bool) {
	switch value := payload[key].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	}
	return 0, false
}
