package verdict

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veristat/veristat/internal/model"
)

func detailResults(supported, contradicted, insufficient int) []model.DetailResult {
	var out []model.DetailResult
	add := func(n int, v model.Verdict) {
		for i := 0; i < n; i++ {
			out = append(out, model.DetailResult{
				Detail:             "detail",
				VerificationResult: model.VerificationResult{Verdict: v, Explanation: "e"},
			})
		}
	}
	add(supported, model.VerdictSupported)
	add(contradicted, model.VerdictContradicted)
	add(insufficient, model.VerdictInsufficient)
	return out
}

func TestFallbackRule(t *testing.T) {
	cases := []struct {
		supported, contradicted, insufficient int
		want                                  model.Credibility
	}{
		// any contradiction disqualifies, regardless of support
		{2, 1, 0, model.CredibilityMisleading},
		{0, 1, 5, model.CredibilityMisleading},
		// more supported than insufficient
		{3, 0, 1, model.CredibilityCredible},
		{1, 0, 0, model.CredibilityCredible},
		// ties and support deficits stay uncertain
		{1, 0, 1, model.CredibilityUncertain},
		{1, 0, 2, model.CredibilityUncertain},
		{0, 0, 0, model.CredibilityUncertain},
		{0, 0, 3, model.CredibilityUncertain},
	}

	for _, c := range cases {
		counts := model.VerdictCounts{
			Supported:    c.supported,
			Contradicted: c.contradicted,
			Insufficient: c.insufficient,
		}
		if got := FallbackRule(counts); got != c.want {
			t.Errorf("FallbackRule(%d/%d/%d) = %s, want %s",
				c.supported, c.contradicted, c.insufficient, got, c.want)
		}
	}
}

func TestJudge_Success(t *testing.T) {
	p := &stubProvider{response: `{"credibility": "CREDIBLE", "explanation": "標題可信"}`}
	j := NewJudge(p)

	tv := j.Judge(context.Background(), "title", detailResults(3, 0, 1), model.LanguageZhTW)

	if tv.OverallCredibility != model.CredibilityCredible {
		t.Errorf("credibility = %s, want CREDIBLE", tv.OverallCredibility)
	}
	if tv.Explanation != "標題可信" {
		t.Errorf("explanation = %q", tv.Explanation)
	}
	if tv.DetailSummary.Supported != 3 || tv.DetailSummary.Insufficient != 1 {
		t.Errorf("detail summary = %+v", tv.DetailSummary)
	}
}

func TestJudge_ProviderFailureUsesFallback(t *testing.T) {
	j := NewJudge(&stubProvider{err: errors.New("down")})

	tv := j.Judge(context.Background(), "title", detailResults(2, 1, 0), model.LanguageZhTW)

	if tv.OverallCredibility != model.CredibilityMisleading {
		t.Errorf("credibility = %s, want MISLEADING from fallback", tv.OverallCredibility)
	}
	want := "Unable to generate detailed explanation. Based on 2 supported, 1 contradicted, 0 insufficient evidence."
	if tv.Explanation != want {
		t.Errorf("explanation = %q, want %q", tv.Explanation, want)
	}
}

func TestJudge_UnparseableResponseUsesFallback(t *testing.T) {
	j := NewJudge(&stubProvider{response: "definitely credible"})

	tv := j.Judge(context.Background(), "title", detailResults(3, 0, 1), model.LanguageZhTW)

	if tv.OverallCredibility != model.CredibilityCredible {
		t.Errorf("credibility = %s, want CREDIBLE from fallback", tv.OverallCredibility)
	}
	if !strings.Contains(tv.Explanation, "Unable to generate detailed explanation") {
		t.Errorf("explanation = %q", tv.Explanation)
	}
}

func TestJudge_NoDetails(t *testing.T) {
	j := NewJudge(&stubProvider{err: errors.New("down")})

	tv := j.Judge(context.Background(), "title", nil, model.LanguageZhTW)

	if tv.OverallCredibility != model.CredibilityUncertain {
		t.Errorf("credibility = %s, want UNCERTAIN with no details", tv.OverallCredibility)
	}
}

func TestJudge_PromptCarriesCountsAndTitle(t *testing.T) {
	p := &stubProvider{response: `{"credibility": "UNCERTAIN", "explanation": "x"}`}
	j := NewJudge(p)

	j.Judge(context.Background(), "市長宣布新政策", detailResults(1, 2, 3), model.LanguageZhTW)

	if !strings.Contains(p.system, "市長宣布新政策") {
		t.Error("prompt should carry the title")
	}
	for _, line := range []string{"Supported: 1", "Contradicted: 2", "Insufficient evidence: 3"} {
		if !strings.Contains(p.system, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
}

func TestDetailsSummary_TruncatesExplanations(t *testing.T) {
	long := strings.Repeat("詳", 150)
	details := []model.DetailResult{{
		Detail:             "d",
		VerificationResult: model.VerificationResult{Verdict: model.VerdictSupported, Explanation: long},
	}}

	s := detailsSummary(details)
	if strings.Contains(s, long) {
		t.Error("summary should truncate long explanations")
	}
	if !strings.Contains(s, "...") {
		t.Error("truncated summary should end with ellipsis")
	}
}
