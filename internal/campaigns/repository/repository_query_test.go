package repository

import (
	"strings"
	"testing"
)

func TestIncrementCountersQueryKeepsAggregatesConsistent(t *testing.T) {
	query := strings.ToLower(incrementCountersQuery)

	requiredFragments := []string{
		"completed_calls = completed_calls + 1",
		"successful_calls = successful_calls + $2",
		"failed_calls = failed_calls + (1 - $2)",
		"where id = $1",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected counter query fragment %q to be present", fragment)
		}
	}
}

func TestIncrementCountersQueryReturnsFullRow(t *testing.T) {
	if !strings.Contains(strings.ToLower(incrementCountersQuery), "returning") {
		t.Fatal("counter query must return the updated campaign row")
	}
	for _, column := range strings.Split(campaignColumns, ",") {
		column = strings.TrimSpace(column)
		if !strings.Contains(incrementCountersQuery, column) {
			t.Fatalf("expected returned column %q to be present", column)
		}
	}
}

func TestDueCandidateLinksQueryFiltersRetryBackoff(t *testing.T) {
	query := strings.ToLower(dueCandidateLinksQuery)

	requiredFragments := []string{
		"where campaign_id = $1",
		"status = 'pending'",
		"next_attempt_at is null or next_attempt_at <= now()",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected due-links query fragment %q to be present", fragment)
		}
	}
}
