// Package executor orchestrates campaign launches in mock and live mode.
package executor

import (
	"context"
	"fmt"
	"math/rand/v2"

	callsrepo "recruit_portal_backend/internal/calls/repository"
	"recruit_portal_backend/internal/campaigns/domain"
	"recruit_portal_backend/internal/campaigns/repository"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Result is the launch outcome reported to the caller.
type Result struct {
	Success      bool   `json:"success"`
	CallsCreated int    `json:"callsCreated"`
	MockMode     bool   `json:"mockMode"`
	Message      string `json:"message"`
}

// CampaignStore is the campaign persistence the executor needs.
type CampaignStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Campaign, error)
	ListCandidateLinks(ctx context.Context, campaignID uuid.UUID) ([]repository.CandidateLink, error)
	SetRunning(ctx context.Context, id uuid.UUID, totalCandidates int) error
	FinishMockExecution(ctx context.Context, id uuid.UUID, completed, successful, failed int) (repository.Campaign, error)
}

// CallWriter records synthesized mock calls.
type CallWriter interface {
	Create(ctx context.Context, params callsrepo.CreateParams) (callsrepo.Call, error)
}

// CandidateReader resolves attached candidates for eligibility checks.
type CandidateReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (candrepo.Candidate, error)
}

// EligibilityGate applies DNC/consent filtering before any call.
type EligibilityGate interface {
	FilterEligible(ctx context.Context, list []candrepo.Candidate) ([]candrepo.Candidate, error)
}

// MockModeReader reports whether launches should synthesize calls.
type MockModeReader interface {
	MockMode(ctx context.Context) (bool, error)
}

// Dispatcher queues live campaign execution.
type Dispatcher interface {
	EnqueueDispatch(ctx context.Context, campaignID uuid.UUID) error
}

// ProviderCheck reports whether a voice provider is configured.
type ProviderCheck interface {
	IsVapiEnabled() bool
}

// Executor launches campaigns.
type Executor struct {
	campaigns  CampaignStore
	calls      CallWriter
	candidates CandidateReader
	gate       EligibilityGate
	mockMode   MockModeReader
	dispatcher Dispatcher
	provider   ProviderCheck
	bus        events.Bus
	log        *logger.Logger
}

// New creates the campaign executor.
func New(campaigns CampaignStore, calls CallWriter, candidates CandidateReader,
	gate EligibilityGate, mockMode MockModeReader, dispatcher Dispatcher,
	provider ProviderCheck, bus events.Bus, log *logger.Logger) *Executor {
	return &Executor{
		campaigns:  campaigns,
		calls:      calls,
		candidates: candidates,
		gate:       gate,
		mockMode:   mockMode,
		dispatcher: dispatcher,
		provider:   provider,
		bus:        bus,
		log:        log,
	}
}

// Launch executes a campaign. A missing campaign returns a NotFound error;
// every other failure is reported inside the Result so the handler can
// answer 400 with the execution shape.
func (e *Executor) Launch(ctx context.Context, campaignID uuid.UUID) (Result, error) {
	campaign, err := e.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Result{}, err
		}
		e.log.DatabaseError("launch campaign", err)
		return Result{Message: "campaign execution failed"}, nil
	}

	// Launching means entering the running state, so the same transition
	// table that guards PATCH applies. Terminal campaigns cannot relaunch.
	if err := domain.ValidateTransition(domain.Status(campaign.Status), domain.StatusRunning); err != nil {
		return Result{Message: fmt.Sprintf("cannot launch a %s campaign", campaign.Status)}, nil
	}

	mockMode, err := e.mockMode.MockMode(ctx)
	if err != nil {
		e.log.DatabaseError("read mock mode", err)
		return Result{Message: "campaign execution failed"}, nil
	}

	if mockMode {
		return e.executeMock(ctx, campaign), nil
	}
	return e.executeLive(ctx, campaign), nil
}

// mockOutcomes is the synthesized outcome cycle.
var mockOutcomes = []string{"interested", "not_interested", "no_answer"}

func (e *Executor) executeMock(ctx context.Context, campaign repository.Campaign) Result {
	total := campaign.TotalCandidates

	eligible, err := e.eligibleCandidates(ctx, campaign.ID)
	if err != nil {
		e.log.DatabaseError("resolve eligible candidates", err)
		return Result{MockMode: true, Message: "mock campaign execution failed"}
	}

	successful := 0
	for i := 0; i < total; i++ {
		outcome := mockOutcomes[i%len(mockOutcomes)]
		if outcome == "interested" {
			successful++
		}

		duration := rand.IntN(600) + 30
		confidence := rand.IntN(30) + 70
		sentiment := mockSentiment(outcome)
		transcript := mockTranscript(outcome)
		summary := mockSummary(outcome)
		vapiCallID := fmt.Sprintf("mock-%s-%d", campaign.ID, i)

		// Surplus calls beyond the attached eligible set stay unlinked.
		var candidateID *uuid.UUID
		if i < len(eligible) {
			id := eligible[i].ID
			candidateID = &id
		}

		_, err := e.calls.Create(ctx, callsrepo.CreateParams{
			CampaignID:  &campaign.ID,
			CandidateID: candidateID,
			VapiCallID:  &vapiCallID,
			Outcome:     &outcome,
			Duration:    &duration,
			Transcript:  &transcript,
			Summary:     &summary,
			Sentiment:   &sentiment,
			Confidence:  &confidence,
		})
		if err != nil {
			e.log.DatabaseError("insert mock call", err)
			return Result{MockMode: true, Message: "mock campaign execution failed"}
		}
	}

	// State is only written once all calls exist, as the final step.
	completed, err := e.campaigns.FinishMockExecution(ctx, campaign.ID, total, successful, total-successful)
	if err != nil {
		e.log.DatabaseError("finish mock execution", err)
		return Result{MockMode: true, Message: "mock campaign execution failed"}
	}

	e.log.CampaignEvent("mock_executed", campaign.ID.String())
	e.publishLaunched(ctx, campaign.ID, true, total)
	e.publishCompleted(ctx, completed)

	return Result{
		Success:      true,
		CallsCreated: total,
		MockMode:     true,
		Message:      fmt.Sprintf("Mock campaign executed: %d calls created (%d interested)", total, successful),
	}
}

func (e *Executor) executeLive(ctx context.Context, campaign repository.Campaign) Result {
	if !e.provider.IsVapiEnabled() {
		return Result{Message: "no voice provider configured - enable mock mode or configure Vapi"}
	}

	eligible, err := e.eligibleCandidates(ctx, campaign.ID)
	if err != nil {
		e.log.DatabaseError("resolve eligible candidates", err)
		return Result{Message: "campaign execution failed"}
	}
	if len(eligible) == 0 {
		return Result{Message: "no eligible candidates to call"}
	}

	if err := e.campaigns.SetRunning(ctx, campaign.ID, len(eligible)); err != nil {
		e.log.DatabaseError("set campaign running", err)
		return Result{Message: "campaign execution failed"}
	}

	if err := e.dispatcher.EnqueueDispatch(ctx, campaign.ID); err != nil {
		e.log.Error("enqueue campaign dispatch failed", "campaign_id", campaign.ID.String(), "error", err.Error())
		return Result{Message: "campaign execution failed"}
	}

	e.log.CampaignEvent("dispatched", campaign.ID.String())
	e.publishLaunched(ctx, campaign.ID, false, 0)

	return Result{
		Success: true,
		Message: fmt.Sprintf("campaign dispatched: %d candidates queued", len(eligible)),
	}
}

// eligibleCandidates resolves the attached candidates and applies the gate.
func (e *Executor) eligibleCandidates(ctx context.Context, campaignID uuid.UUID) ([]candrepo.Candidate, error) {
	links, err := e.campaigns.ListCandidateLinks(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	attached := make([]candrepo.Candidate, 0, len(links))
	for _, link := range links {
		candidate, err := e.candidates.GetByID(ctx, link.CandidateID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return nil, err
		}
		attached = append(attached, candidate)
	}

	return e.gate.FilterEligible(ctx, attached)
}

func (e *Executor) publishLaunched(ctx context.Context, campaignID uuid.UUID, mockMode bool, callsCreated int) {
	e.bus.Publish(ctx, events.CampaignLaunched{
		BaseEvent:    events.NewBaseEvent(),
		CampaignID:   campaignID,
		MockMode:     mockMode,
		CallsCreated: callsCreated,
	})
}

func (e *Executor) publishCompleted(ctx context.Context, campaign repository.Campaign) {
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
	e.bus.Publish(ctx, event)
}

func mockSentiment(outcome string) string {
	switch outcome {
	case "interested":
		return "positive"
	case "not_interested":
		return "negative"
	default:
		return "neutral"
	}
}

func mockTranscript(outcome string) string {
	switch outcome {
	case "interested":
		return "Agent: Hello, this is AI calling from Acme Corp regarding the Senior Engineer role.\nCandidate: Hi, yes I'm interested.\nAgent: Great! Can you tell me about your experience?\nCandidate: I have 5 years of backend development experience.\nAgent: Perfect, we'll have a recruiter contact you soon."
	case "not_interested":
		return "Agent: Hello, this is AI calling from Acme Corp regarding the Senior Engineer role.\nCandidate: Sorry, I'm not looking to change jobs right now.\nAgent: I understand, thanks for your time."
	default:
		return "Agent: Hello, this is AI calling from Acme Corp regarding the Senior Engineer role.\n[No response - voicemail recorded]"
	}
}

func mockSummary(outcome string) string {
	switch outcome {
	case "interested":
		return "Candidate expressed strong interest in the position and is open to next steps."
	case "not_interested":
		return "Candidate is not actively looking for a new role at this time."
	default:
		return "Call went to voicemail - candidate did not answer."
	}
}
