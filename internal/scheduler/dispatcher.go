package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	campaignsrepo "recruit_portal_backend/internal/campaigns/repository"
	candrepo "recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/internal/telephony"
	vacrepo "recruit_portal_backend/internal/vacancies/repository"
	"recruit_portal_backend/platform/apperr"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// CandidateReader resolves candidates for dialing.
type CandidateReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (candrepo.Candidate, error)
}

// VacancyReader resolves the vacancy referenced by a campaign script.
type VacancyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (vacrepo.Vacancy, error)
}

// EligibilityGate re-checks DNC/consent right before each call.
type EligibilityGate interface {
	FilterEligible(ctx context.Context, list []candrepo.Candidate) ([]candrepo.Candidate, error)
}

// Rescheduler re-queues a dispatch round after a delay.
type Rescheduler interface {
	EnqueueDispatchIn(ctx context.Context, campaignID uuid.UUID, delay time.Duration) error
}

// Dispatcher works through a running campaign's due candidates.
type Dispatcher struct {
	campaigns  campaignsrepo.Repository
	candidates CandidateReader
	vacancies  VacancyReader
	gate       EligibilityGate
	provider   telephony.Provider
	requeue    Rescheduler
	bus        events.Bus
	log        *logger.Logger
	now        func() time.Time
}

// NewDispatcher creates the campaign dispatcher.
func NewDispatcher(campaigns campaignsrepo.Repository, candidates CandidateReader,
	vacancies VacancyReader, gate EligibilityGate, provider telephony.Provider,
	requeue Rescheduler, bus events.Bus, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		campaigns:  campaigns,
		candidates: candidates,
		vacancies:  vacancies,
		gate:       gate,
		provider:   provider,
		requeue:    requeue,
		bus:        bus,
		log:        log,
		now:        time.Now,
	}
}

// retryable outcomes re-enter the queue until the retry limit is reached.
func retryable(outcome string) bool {
	return outcome == "no_answer" || outcome == "busy"
}

// HandleDispatch runs one dial round for a campaign. Deleted or non-running
// campaigns end the round quietly; a closed call window reschedules the round
// for the next opening.
func (d *Dispatcher) HandleDispatch(ctx context.Context, campaignID uuid.UUID) error {
	campaign, err := d.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if campaign.Status != "running" {
		return nil
	}

	window := CallWindow{
		Start: campaign.CallWindowStart,
		End:   campaign.CallWindowEnd,
		Days:  campaign.CallWindowDays,
	}
	now := d.now()
	if !window.Contains(now) {
		opening := window.NextOpening(now)
		d.log.CampaignEvent("dispatch_deferred", campaignID.String(),
			slog.String("next_opening", opening.Format(time.RFC3339)))
		return d.requeue.EnqueueDispatchIn(ctx, campaignID, opening.Sub(now))
	}

	links, err := d.campaigns.ListDuePending(ctx, campaignID)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return d.maybeComplete(ctx, campaignID)
	}

	script := ""
	if campaign.ScriptTemplate != nil {
		script = *campaign.ScriptTemplate
	}
	vacancyTitle := d.vacancyTitle(ctx, campaign.VacancyID)

	maxInFlight := int64(campaign.MaxConcurrentCalls)
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	sem := semaphore.NewWeighted(maxInFlight)

	var wg sync.WaitGroup
	var mu sync.Mutex
	needsRetryRound := false

	for _, link := range links {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(link campaignsrepo.CandidateLink) {
			defer wg.Done()
			defer sem.Release(1)

			retried := d.dialCandidate(ctx, campaign, link, script, vacancyTitle)
			if retried {
				mu.Lock()
				needsRetryRound = true
				mu.Unlock()
			}
		}(link)
	}
	wg.Wait()

	if needsRetryRound {
		delay := time.Duration(campaign.RetryDelayMinutes) * time.Minute
		if delay <= 0 {
			delay = time.Minute
		}
		return d.requeue.EnqueueDispatchIn(ctx, campaignID, delay)
	}
	return d.maybeComplete(ctx, campaignID)
}

// dialCandidate places one call and records its completion. It reports
// whether the candidate was scheduled for another attempt.
func (d *Dispatcher) dialCandidate(ctx context.Context, campaign campaignsrepo.Campaign,
	link campaignsrepo.CandidateLink, script, vacancyTitle string) bool {

	candidate, err := d.candidates.GetByID(ctx, link.CandidateID)
	if err != nil {
		d.log.DatabaseError("resolve dial candidate", err)
		return false
	}

	// Consent can be revoked mid-campaign, so the gate runs again per call.
	eligible, err := d.gate.FilterEligible(ctx, []candrepo.Candidate{candidate})
	if err != nil {
		d.log.DatabaseError("gate dial candidate", err)
		return false
	}
	if len(eligible) == 0 {
		d.recordBlocked(ctx, campaign.ID, candidate.ID)
		return false
	}

	report, err := d.provider.PlaceCall(ctx, telephony.CallParams{
		Phone:         candidate.Phone,
		Script:        script,
		CandidateName: candidate.Name,
		VacancyTitle:  vacancyTitle,
	})
	if err != nil {
		d.log.Error("provider call failed", "campaign_id", campaign.ID.String(),
			"candidate_id", candidate.ID.String(), "error", err.Error())
		msg := err.Error()
		report.Outcome = "error"
		report.ErrorMessage = &msg
	}

	if retryable(report.Outcome) && link.Attempts < campaign.RetryLimit {
		if err := d.campaigns.ScheduleRetry(ctx, link.ID, campaign.RetryDelayMinutes); err != nil {
			d.log.DatabaseError("schedule call retry", err)
			return false
		}
		return true
	}

	params := campaignsrepo.CompletedCallParams{
		CampaignID:   campaign.ID,
		CandidateID:  &candidate.ID,
		Outcome:      report.Outcome,
		Duration:     report.Duration,
		Transcript:   report.Transcript,
		Summary:      report.Summary,
		ErrorMessage: report.ErrorMessage,
	}
	if report.ProviderCallID != "" {
		params.VapiCallID = &report.ProviderCallID
	}

	if _, err := d.campaigns.RecordCompletedCall(ctx, params); err != nil {
		d.log.DatabaseError("record completed call", err)
	}
	return false
}

// recordBlocked resolves a gated-out candidate as an opt-out so the campaign
// can still run to completion.
func (d *Dispatcher) recordBlocked(ctx context.Context, campaignID, candidateID uuid.UUID) {
	outcome := "opt_out"
	message := "candidate excluded by dnc/consent gate"
	_, err := d.campaigns.RecordCompletedCall(ctx, campaignsrepo.CompletedCallParams{
		CampaignID:   campaignID,
		CandidateID:  &candidateID,
		Outcome:      outcome,
		ErrorMessage: &message,
	})
	if err != nil {
		d.log.DatabaseError("record blocked candidate", err)
	}
}

// maybeComplete closes the campaign once every expected call is accounted for.
func (d *Dispatcher) maybeComplete(ctx context.Context, campaignID uuid.UUID) error {
	campaign, err := d.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign.Status != "running" || campaign.TotalCandidates == 0 ||
		campaign.CompletedCalls < campaign.TotalCandidates {
		return nil
	}

	completed, err := d.campaigns.MarkCompleted(ctx, campaignID)
	if err != nil {
		return err
	}

	d.log.CampaignEvent("completed", campaignID.String())
	event := events.CampaignCompleted{
		BaseEvent:       events.NewBaseEvent(),
		CampaignID:      completed.ID,
		CampaignName:    completed.Name,
		CompletedCalls:  completed.CompletedCalls,
		SuccessfulCalls: completed.SuccessfulCalls,
		FailedCalls:     completed.FailedCalls,
	}
	if completed.CreatedBy != nil {
		event.CreatedBy = *completed.CreatedBy
	}
	d.bus.Publish(ctx, event)
	return nil
}

func (d *Dispatcher) vacancyTitle(ctx context.Context, vacancyID *uuid.UUID) string {
	if vacancyID == nil {
		return ""
	}
	vacancy, err := d.vacancies.GetByID(ctx, *vacancyID)
	if err != nil {
		return ""
	}
	return vacancy.Title
}
