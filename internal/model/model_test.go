package model

import "testing"

func TestLanguageNormalize(t *testing.T) {
	cases := []struct {
		in   Language
		want Language
	}{
		{"zh-TW", LanguageZhTW},
		{"en", LanguageEn},
		{"auto", LanguageAuto},
		{"", LanguageZhTW},
		{"fr", LanguageZhTW},
		{"EN", LanguageZhTW},
	}

	for _, c := range cases {
		if got := c.in.Normalize(); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSearchResultValid(t *testing.T) {
	cases := []struct {
		r    SearchResult
		want bool
	}{
		{SearchResult{Title: "t", Body: "b", Href: "h"}, true},
		{SearchResult{Title: "t", Body: "b"}, true}, // missing link is tolerated
		{SearchResult{Title: "t"}, false},
		{SearchResult{Body: "b"}, false},
		{SearchResult{}, false},
	}

	for i, c := range cases {
		if got := c.r.Valid(); got != c.want {
			t.Errorf("case %d: Valid() = %v, want %v", i, got, c.want)
		}
	}
}

func TestVerdictCountsAdd(t *testing.T) {
	var c VerdictCounts
	c.Add(VerdictSupported)
	c.Add(VerdictSupported)
	c.Add(VerdictContradicted)
	c.Add(VerdictInsufficient)
	c.Add(Verdict("something unexpected")) // unknown verdicts count as insufficient

	if c.Supported != 2 || c.Contradicted != 1 || c.Insufficient != 2 {
		t.Errorf("counts = %+v", c)
	}
	if c.Total() != 5 {
		t.Errorf("total = %d, want 5", c.Total())
	}
}

func TestEvidenceBreakdownTotal(t *testing.T) {
	b := EvidenceBreakdown{Support: 2, Refute: 1, Irrelevant: 3}
	if b.Total() != 6 {
		t.Errorf("total = %d, want 6", b.Total())
	}
}
