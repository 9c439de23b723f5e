package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit_portal_backend/platform/apperr"
)

const callNotFoundMessage = "call not found"

const callColumns = `id, campaign_id, candidate_id, vapi_call_id, twilio_call_sid, outcome, duration,
	audio_url, transcript, summary, sentiment, confidence, extracted_data, recommended_action,
	scheduled_interview_at, ghl_synced, ghl_synced_at, error_message, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new calls repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves calls, newest first, honoring the filter.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]Call, error) {
	query := `SELECT ` + callColumns + ` FROM calls`
	args := []any{}
	clause := " WHERE"

	if filter.CampaignID != nil {
		args = append(args, *filter.CampaignID)
		query += clause + " campaign_id = $" + strconv.Itoa(len(args))
		clause = " AND"
	}
	if filter.CandidateID != nil {
		args = append(args, *filter.CandidateID)
		query += clause + " candidate_id = $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer rows.Close()

	return scanCalls(rows)
}

// GetByID retrieves a call by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Call, error) {
	query := `SELECT ` + callColumns + ` FROM calls WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByVapiCallID retrieves a call by the provider call reference.
// Used by webhook ingestion to apply outcomes to live calls.
func (r *Repo) GetByVapiCallID(ctx context.Context, vapiCallID string) (Call, error) {
	query := `SELECT ` + callColumns + ` FROM calls WHERE vapi_call_id = $1`
	return r.scanOne(ctx, query, vapiCallID)
}

// Create records a call.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Call, error) {
	query := `
		INSERT INTO calls (id, campaign_id, candidate_id, vapi_call_id, twilio_call_sid, outcome,
			duration, audio_url, transcript, summary, sentiment, confidence, extracted_data,
			recommended_action, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + callColumns

	if params.ExtractedData == nil {
		params.ExtractedData = map[string]any{}
	}

	return r.scanOne(ctx, query,
		uuid.New(), params.CampaignID, params.CandidateID, params.VapiCallID, params.TwilioCallSid,
		params.Outcome, params.Duration, params.AudioURL, params.Transcript, params.Summary,
		params.Sentiment, params.Confidence, params.ExtractedData, params.RecommendedAction,
		params.ErrorMessage)
}

// Update applies a partial update; nil params keep the current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Call, error) {
	query := `
		UPDATE calls SET
			outcome = COALESCE($2, outcome),
			duration = COALESCE($3, duration),
			audio_url = COALESCE($4, audio_url),
			transcript = COALESCE($5, transcript),
			summary = COALESCE($6, summary),
			sentiment = COALESCE($7, sentiment),
			confidence = COALESCE($8, confidence),
			extracted_data = COALESCE($9, extracted_data),
			recommended_action = COALESCE($10, recommended_action),
			scheduled_interview_at = COALESCE($11::timestamptz, scheduled_interview_at),
			ghl_synced = COALESCE($12, ghl_synced),
			ghl_synced_at = CASE
				WHEN $12::boolean IS NULL THEN ghl_synced_at
				WHEN $12::boolean THEN now()
				ELSE NULL
			END,
			error_message = COALESCE($13, error_message),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + callColumns

	var extractedData any
	if params.ExtractedData != nil {
		extractedData = params.ExtractedData
	}

	return r.scanOne(ctx, query,
		params.ID, params.Outcome, params.Duration, params.AudioURL, params.Transcript,
		params.Summary, params.Sentiment, params.Confidence, extractedData,
		params.RecommendedAction, params.ScheduledInterviewAt, params.GhlSynced,
		params.ErrorMessage)
}

func (r *Repo) scanOne(ctx context.Context, query string, args ...any) (Call, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	call, err := scanCall(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Call{}, apperr.NotFound(callNotFoundMessage)
		}
		return Call{}, fmt.Errorf("query call: %w", err)
	}
	return call, nil
}

func scanCall(row pgx.Row) (Call, error) {
	var c Call
	var createdAt, updatedAt time.Time
	var scheduledInterviewAt, ghlSyncedAt *time.Time

	err := row.Scan(
		&c.ID, &c.CampaignID, &c.CandidateID, &c.VapiCallID, &c.TwilioCallSid, &c.Outcome,
		&c.Duration, &c.AudioURL, &c.Transcript, &c.Summary, &c.Sentiment, &c.Confidence,
		&c.ExtractedData, &c.RecommendedAction, &scheduledInterviewAt, &c.GhlSynced,
		&ghlSyncedAt, &c.ErrorMessage, &createdAt, &updatedAt,
	)
	if err != nil {
		return Call{}, err
	}

	c.ScheduledInterviewAt = formatTime(scheduledInterviewAt)
	c.GhlSyncedAt = formatTime(ghlSyncedAt)
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

func scanCalls(rows pgx.Rows) ([]Call, error) {
	calls := make([]Call, 0)
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
