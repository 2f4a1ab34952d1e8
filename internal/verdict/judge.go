package verdict

import (
	"context"
	"fmt"
	"strings"

	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
)

// Judge rolls per-detail verdicts up into a title-level credibility
// judgment. Generative synthesis is attempted first; when it fails or its
// output cannot be parsed, the deterministic fallback rule decides. The
// fallback is the only guaranteed-deterministic path and its semantics are
// fixed: any Contradicted detail makes the title MISLEADING, otherwise more
// Supported than Insufficient details make it CREDIBLE, otherwise UNCERTAIN.
type Judge struct {
	provider llm.Provider
}

// NewJudge creates a new hierarchical credibility judge
func NewJudge(provider llm.Provider) *Judge {
	return &Judge{provider: provider}
}

type judgeResponse struct {
	Credibility string `json:"credibility"`
	Explanation string `json:"explanation"`
}

// Judge classifies the title from the verification of its details
func (j *Judge) Judge(ctx context.Context, title string, details []model.DetailResult, lang model.Language) model.TitleVerdict {
	var counts model.VerdictCounts
	for _, d := range details {
		counts.Add(d.Verdict)
	}

	system := j.buildPrompt(title, counts, lang)
	user := "Details verification:\n" + detailsSummary(details)

	out, err := j.provider.Complete(ctx, system, user)
	if err != nil {
		return fallbackVerdict(counts)
	}

	var resp judgeResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		return fallbackVerdict(counts)
	}

	return model.TitleVerdict{
		OverallCredibility: ParseCredibility(resp.Credibility),
		Explanation:        resp.Explanation,
		DetailSummary:      counts,
	}
}

// FallbackRule applies the deterministic title classification
func FallbackRule(counts model.VerdictCounts) model.Credibility {
	switch {
	case counts.Contradicted > 0:
		return model.CredibilityMisleading
	case counts.Supported > counts.Insufficient:
		return model.CredibilityCredible
	default:
		return model.CredibilityUncertain
	}
}

func fallbackVerdict(counts model.VerdictCounts) model.TitleVerdict {
	return model.TitleVerdict{
		OverallCredibility: FallbackRule(counts),
		Explanation: fmt.Sprintf(
			"Unable to generate detailed explanation. Based on %d supported, %d contradicted, %d insufficient evidence.",
			counts.Supported, counts.Contradicted, counts.Insufficient),
		DetailSummary: counts,
	}
}

func (j *Judge) buildPrompt(title string, counts model.VerdictCounts, lang model.Language) string {
	var sb strings.Builder

	sb.WriteString(languageInstruction(lang))
	sb.WriteString("\n\n")
	sb.WriteString("You are judging whether a news article's TITLE is credible based on the verification of specific details from the content.\n\n")
	fmt.Fprintf(&sb, "Title to judge: %s\n\n", title)
	fmt.Fprintf(&sb, "Details verification summary:\n")
	fmt.Fprintf(&sb, "- Supported: %d\n", counts.Supported)
	fmt.Fprintf(&sb, "- Contradicted: %d\n", counts.Contradicted)
	fmt.Fprintf(&sb, "- Insufficient evidence: %d\n\n", counts.Insufficient)
	sb.WriteString("Decision logic:\n")
	sb.WriteString("- If most details are SUPPORTED → Title is likely TRUE\n")
	sb.WriteString("- If key details are CONTRADICTED → Title is FALSE or MISLEADING\n")
	sb.WriteString("- If most details lack evidence → Cannot determine title credibility\n\n")
	sb.WriteString("Classify the title as:\n")
	sb.WriteString("- CREDIBLE: Strong evidence supports the title\n")
	sb.WriteString("- MISLEADING: Evidence contradicts or undermines the title\n")
	sb.WriteString("- UNCERTAIN: Insufficient evidence to judge\n\n")
	sb.WriteString("In your explanation:\n")
	sb.WriteString("1. Which details support/contradict the title\n")
	sb.WriteString("2. Overall assessment of title accuracy\n")
	sb.WriteString("3. Any caveats or uncertainties\n\n")
	sb.WriteString("Return JSON with fields: credibility (CREDIBLE/MISLEADING/UNCERTAIN), explanation.\n")
	sb.WriteString("Your entire response must be in the language specified at the top.")

	return sb.String()
}

// detailsSummary renders the per-detail outcomes handed to the judge
func detailsSummary(details []model.DetailResult) string {
	var sb strings.Builder
	for i, d := range details {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, d.Detail)
		fmt.Fprintf(&sb, "   Verdict: %s\n", d.Verdict)
		fmt.Fprintf(&sb, "   Brief: %s\n\n", truncate(d.Explanation, 100))
	}
	return sb.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
