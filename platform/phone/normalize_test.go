package phone

import "testing"

func TestNormalizeE164Region(t *testing.T) {
	cases := []struct {
		input  string
		region string
		want   string
	}{
		{"+14155552671", "US", "+14155552671"},
		{"(415) 555-2671", "US", "+14155552671"},
		{"06 12345678", "NL", "+31612345678"},
		{"  +14155552671  ", "", "+14155552671"},
		{"not a number", "US", "not a number"},
		{"", "US", ""},
	}
	for _, tc := range cases {
		if got := NormalizeE164Region(tc.input, tc.region); got != tc.want {
			t.Errorf("NormalizeE164Region(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("+14155552671", "US") {
		t.Error("valid US number rejected")
	}
	if IsValid("12345", "US") {
		t.Error("short number accepted")
	}
}
