package telephony

import "testing"

func TestResolveScript(t *testing.T) {
	script := "Hi {{candidate_name}}, calling about {{vacancy_title}}."

	got := ResolveScript(script, "Ada", "Senior Engineer")
	want := "Hi Ada, calling about Senior Engineer."
	if got != want {
		t.Fatalf("ResolveScript() = %q, want %q", got, want)
	}
}

func TestResolveScriptWithoutPlaceholders(t *testing.T) {
	if got := ResolveScript("plain text", "Ada", "Role"); got != "plain text" {
		t.Fatalf("ResolveScript() = %q, want unchanged", got)
	}
}

func TestOutcomeFromEndedReason(t *testing.T) {
	cases := map[string]string{
		"customer-ended-call":     "interested",
		"customer-did-not-answer": "no_answer",
		"customer-busy":           "busy",
		"voicemail":               "voicemail",
		"pipeline-error":          "error",
	}
	for reason, want := range cases {
		if got := outcomeFromEndedReason(reason); got != want {
			t.Errorf("outcomeFromEndedReason(%q) = %q, want %q", reason, got, want)
		}
	}
}
