// Package telephony abstracts the outbound voice provider used by live
// campaign dispatch.
package telephony

import (
	"context"
	"strings"
)

// CallParams describes one outbound call to place.
type CallParams struct {
	Phone         string
	Script        string
	CandidateName string
	VacancyTitle  string
}

// CallReport is what the provider tells us about a finished call.
type CallReport struct {
	ProviderCallID string
	Outcome        string
	Duration       *int
	Transcript     *string
	Summary        *string
	ErrorMessage   *string
}

// Provider places outbound calls. PlaceCall blocks until the call has ended
// or the context is cancelled.
type Provider interface {
	PlaceCall(ctx context.Context, params CallParams) (CallReport, error)
}

// ResolveScript substitutes the campaign script placeholders.
func ResolveScript(script, candidateName, vacancyTitle string) string {
	resolved := strings.ReplaceAll(script, "{{candidate_name}}", candidateName)
	return strings.ReplaceAll(resolved, "{{vacancy_title}}", vacancyTitle)
}
