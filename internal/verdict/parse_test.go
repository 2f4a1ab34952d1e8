package verdict

import (
	"testing"

	"github.com/veristat/veristat/internal/model"
)

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		in   string
		want model.Verdict
	}{
		{"Supported", model.VerdictSupported},
		{"supported", model.VerdictSupported},
		{"The claim is supported by evidence", model.VerdictSupported},
		{"Contradicted", model.VerdictContradicted},
		{"contradicted by multiple sources", model.VerdictContradicted},
		// "contradict" must win when both words appear
		{"supporting evidence is contradicted", model.VerdictContradicted},
		{"Insufficient evidence", model.VerdictInsufficient},
		{"unknown", model.VerdictInsufficient},
		{"", model.VerdictInsufficient},
	}

	for _, c := range cases {
		if got := ParseVerdict(c.in); got != c.want {
			t.Errorf("ParseVerdict(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseCredibility(t *testing.T) {
	cases := []struct {
		in   string
		want model.Credibility
	}{
		{"CREDIBLE", model.CredibilityCredible},
		{"credible", model.CredibilityCredible},
		{"The title is CREDIBLE", model.CredibilityCredible},
		{"MISLEADING", model.CredibilityMisleading},
		{"FALSE", model.CredibilityMisleading},
		{"the title is false", model.CredibilityMisleading},
		// MISLEADING wins when both labels appear
		{"not CREDIBLE, MISLEADING", model.CredibilityMisleading},
		{"UNCERTAIN", model.CredibilityUncertain},
		{"hard to say", model.CredibilityUncertain},
		{"", model.CredibilityUncertain},
	}

	for _, c := range cases {
		if got := ParseCredibility(c.in); got != c.want {
			t.Errorf("ParseCredibility(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}
