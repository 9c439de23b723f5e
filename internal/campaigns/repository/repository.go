package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit_portal_backend/platform/apperr"
)

const campaignNotFoundMessage = "campaign not found"

const campaignColumns = `id, name, description, status, vacancy_id, script_template,
	call_window_start, call_window_end, call_window_days, max_concurrent_calls,
	retry_limit, retry_delay_minutes, total_candidates, completed_calls,
	successful_calls, failed_calls, created_by, scheduled_at, started_at,
	completed_at, created_at, updated_at`

const linkColumns = `id, campaign_id, candidate_id, status, attempts, last_attempt_at, next_attempt_at`

// incrementCountersQuery moves the aggregates for exactly one finished call;
// $2 is 1 for a successful outcome and 0 otherwise, so completed always
// equals successful + failed.
const incrementCountersQuery = `
	UPDATE campaigns SET
		completed_calls = completed_calls + 1,
		successful_calls = successful_calls + $2,
		failed_calls = failed_calls + (1 - $2),
		updated_at = now()
	WHERE id = $1
	RETURNING ` + campaignColumns

const dueCandidateLinksQuery = `SELECT ` + linkColumns + ` FROM campaign_candidates
	WHERE campaign_id = $1 AND status = 'pending'
		AND (next_attempt_at IS NULL OR next_attempt_at <= now())
	ORDER BY created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaigns repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all campaigns, newest first.
func (r *Repo) List(ctx context.Context) ([]Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

// GetByID retrieves a campaign by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	return r.scanOne(ctx, r.pool, query, id)
}

// Create inserts a new campaign.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Campaign, error) {
	query := `
		INSERT INTO campaigns (id, name, description, status, vacancy_id, script_template,
			call_window_start, call_window_end, call_window_days, max_concurrent_calls,
			retry_limit, retry_delay_minutes, total_candidates, created_by, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::timestamptz)
		RETURNING ` + campaignColumns

	if params.CallWindowDays == nil {
		params.CallWindowDays = []string{}
	}

	return r.scanOne(ctx, r.pool, query,
		uuid.New(), params.Name, params.Description, params.Status, params.VacancyID,
		params.ScriptTemplate, params.CallWindowStart, params.CallWindowEnd, params.CallWindowDays,
		params.MaxConcurrentCalls, params.RetryLimit, params.RetryDelayMinutes,
		params.TotalCandidates, params.CreatedBy, params.ScheduledAt)
}

// Update applies a partial update; nil params keep the current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Campaign, error) {
	query := `
		UPDATE campaigns SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			vacancy_id = COALESCE($5, vacancy_id),
			script_template = COALESCE($6, script_template),
			call_window_start = COALESCE($7, call_window_start),
			call_window_end = COALESCE($8, call_window_end),
			call_window_days = COALESCE($9, call_window_days),
			max_concurrent_calls = COALESCE($10, max_concurrent_calls),
			retry_limit = COALESCE($11, retry_limit),
			retry_delay_minutes = COALESCE($12, retry_delay_minutes),
			total_candidates = COALESCE($13, total_candidates),
			scheduled_at = COALESCE($14::timestamptz, scheduled_at),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + campaignColumns

	return r.scanOne(ctx, r.pool, query,
		params.ID, params.Name, params.Description, params.Status, params.VacancyID,
		params.ScriptTemplate, params.CallWindowStart, params.CallWindowEnd, params.CallWindowDays,
		params.MaxConcurrentCalls, params.RetryLimit, params.RetryDelayMinutes,
		params.TotalCandidates, params.ScheduledAt)
}

// Delete removes a campaign and its candidate links (FK cascade).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}
	return nil
}

// AttachCandidates links candidates to a campaign as pending work and lifts
// total_candidates to at least the junction size.
func (r *Repo) AttachCandidates(ctx context.Context, campaignID uuid.UUID, candidateIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin attach candidates: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, candidateID := range candidateIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO campaign_candidates (id, campaign_id, candidate_id, status, attempts)
			VALUES ($1, $2, $3, 'pending', 0)
			ON CONFLICT (campaign_id, candidate_id) DO NOTHING`,
			uuid.New(), campaignID, candidateID)
		if err != nil {
			return fmt.Errorf("attach candidate: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE campaigns SET
			total_candidates = GREATEST(total_candidates,
				(SELECT count(*) FROM campaign_candidates WHERE campaign_id = $1)),
			updated_at = now()
		WHERE id = $1`, campaignID)
	if err != nil {
		return fmt.Errorf("update total candidates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}

	return tx.Commit(ctx)
}

// ListCandidateLinks retrieves the junction rows for a campaign.
func (r *Repo) ListCandidateLinks(ctx context.Context, campaignID uuid.UUID) ([]CandidateLink, error) {
	query := `SELECT ` + linkColumns + ` FROM campaign_candidates WHERE campaign_id = $1 ORDER BY created_at`
	return r.queryLinks(ctx, query, campaignID)
}

// ListDuePending retrieves pending junction rows whose retry backoff has
// elapsed.
func (r *Repo) ListDuePending(ctx context.Context, campaignID uuid.UUID) ([]CandidateLink, error) {
	return r.queryLinks(ctx, dueCandidateLinksQuery, campaignID)
}

// ScheduleRetry bumps the attempt count and pushes the next attempt out.
func (r *Repo) ScheduleRetry(ctx context.Context, linkID uuid.UUID, delayMinutes int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_candidates SET
			status = 'pending',
			attempts = attempts + 1,
			last_attempt_at = now(),
			next_attempt_at = now() + make_interval(mins => $2)
		WHERE id = $1`, linkID, delayMinutes)
	if err != nil {
		return fmt.Errorf("schedule retry: %w", err)
	}
	return nil
}

// SetRunning transitions a campaign to running with its dial list size.
func (r *Repo) SetRunning(ctx context.Context, id uuid.UUID, totalCandidates int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET
			status = 'running',
			total_candidates = $2,
			started_at = now(),
			updated_at = now()
		WHERE id = $1`, id, totalCandidates)
	if err != nil {
		return fmt.Errorf("set campaign running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}
	return nil
}

// RecordCompletedCall writes the call row, increments the campaign counters,
// and closes the junction row, all in one transaction so the counters can
// never drift from the recorded calls.
func (r *Repo) RecordCompletedCall(ctx context.Context, params CompletedCallParams) (Campaign, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Campaign{}, fmt.Errorf("begin record call: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO calls (id, campaign_id, candidate_id, vapi_call_id, outcome, duration,
			transcript, summary, sentiment, confidence, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.New(), params.CampaignID, params.CandidateID, params.VapiCallID, params.Outcome,
		params.Duration, params.Transcript, params.Summary, params.Sentiment, params.Confidence,
		params.ErrorMessage)
	if err != nil {
		return Campaign{}, fmt.Errorf("insert call: %w", err)
	}

	successful := 0
	if params.Outcome == "interested" {
		successful = 1
	}

	campaign, err := r.scanOne(ctx, tx, incrementCountersQuery, params.CampaignID, successful)
	if err != nil {
		return Campaign{}, err
	}

	if params.CandidateID != nil {
		_, err = tx.Exec(ctx, `
			UPDATE campaign_candidates SET status = 'done', last_attempt_at = now()
			WHERE campaign_id = $1 AND candidate_id = $2`,
			params.CampaignID, *params.CandidateID)
		if err != nil {
			return Campaign{}, fmt.Errorf("close candidate link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Campaign{}, fmt.Errorf("commit record call: %w", err)
	}
	return campaign, nil
}

// IncrementCallCounters bumps the aggregate counters for one finished call
// reported out of band, such as provider webhook feedback.
func (r *Repo) IncrementCallCounters(ctx context.Context, id uuid.UUID, successful bool) (Campaign, error) {
	delta := 0
	if successful {
		delta = 1
	}

	return r.scanOne(ctx, r.pool, incrementCountersQuery, id, delta)
}

// FinishMockExecution writes the final state of a mock launch in one update.
func (r *Repo) FinishMockExecution(ctx context.Context, id uuid.UUID, completed, successful, failed int) (Campaign, error) {
	query := `
		UPDATE campaigns SET
			status = 'completed',
			completed_calls = $2,
			successful_calls = $3,
			failed_calls = $4,
			completed_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + campaignColumns

	return r.scanOne(ctx, r.pool, query, id, completed, successful, failed)
}

// MarkCompleted transitions a running campaign to completed.
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID) (Campaign, error) {
	query := `
		UPDATE campaigns SET
			status = 'completed',
			completed_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + campaignColumns

	return r.scanOne(ctx, r.pool, query, id)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repo) scanOne(ctx context.Context, q queryRower, query string, args ...any) (Campaign, error) {
	campaign, err := scanCampaign(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Campaign{}, fmt.Errorf("query campaign: %w", err)
	}
	return campaign, nil
}

func scanCampaign(row pgx.Row) (Campaign, error) {
	var c Campaign
	var createdAt, updatedAt time.Time
	var scheduledAt, startedAt, completedAt *time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &c.VacancyID, &c.ScriptTemplate,
		&c.CallWindowStart, &c.CallWindowEnd, &c.CallWindowDays, &c.MaxConcurrentCalls,
		&c.RetryLimit, &c.RetryDelayMinutes, &c.TotalCandidates, &c.CompletedCalls,
		&c.SuccessfulCalls, &c.FailedCalls, &c.CreatedBy, &scheduledAt, &startedAt,
		&completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return Campaign{}, err
	}

	c.ScheduledAt = formatTime(scheduledAt)
	c.StartedAt = formatTime(startedAt)
	c.CompletedAt = formatTime(completedAt)
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

func (r *Repo) queryLinks(ctx context.Context, query string, args ...any) ([]CandidateLink, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidate links: %w", err)
	}
	defer rows.Close()

	links := make([]CandidateLink, 0)
	for rows.Next() {
		var link CandidateLink
		var lastAttemptAt, nextAttemptAt *time.Time
		if err := rows.Scan(&link.ID, &link.CampaignID, &link.CandidateID, &link.Status,
			&link.Attempts, &lastAttemptAt, &nextAttemptAt); err != nil {
			return nil, fmt.Errorf("scan candidate link: %w", err)
		}
		link.LastAttemptAt = formatTime(lastAttemptAt)
		link.NextAttemptAt = formatTime(nextAttemptAt)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate links: %w", err)
	}
	return links, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
