package verdict

import (
	"context"
	"fmt"
	"strings"

	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/stance"
)

// Synthesizer combines stance buckets into a claim-level verdict. The
// deterministic guardrails run before any generative call: with zero usable
// evidence the verdict is Insufficient evidence immediately. The generative
// step classifies under an explicit rubric; a malformed response falls back
// locally to Insufficient evidence with a diagnostic explanation and never
// propagates a parse failure.
type Synthesizer struct {
	provider llm.Provider
}

// NewSynthesizer creates a new verdict synthesizer
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Input carries everything the synthesizer needs for one claim
type Input struct {
	Claim         string
	SearchQuery   string
	Buckets       *stance.Buckets
	EvidenceCount int    // valid search results considered
	LowEvidence   string // caller-supplied warning, prepended verbatim when set
	Temporal      string // first temporal warning encountered; only one is surfaced
	Language      model.Language
}

type synthesisResponse struct {
	Verdict     string `json:"verdict"`
	Explanation string `json:"explanation"`
}

// Synthesize produces the claim's VerificationResult
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) model.VerificationResult {
	breakdown := in.Buckets.Breakdown()

	result := model.VerificationResult{
		EvidenceCount:   in.EvidenceCount,
		SearchQuery:     in.SearchQuery,
		Breakdown:       breakdown,
		PreFiltered:     in.Buckets.PreFiltered,
		TemporalWarning: in.Temporal,
		Supporting:      in.Buckets.Support,
		Refuting:        in.Buckets.Refute,
	}

	// Guardrail: nothing survived classification, no point invoking synthesis
	if in.Buckets.Classified() == 0 {
		result.Verdict = model.VerdictInsufficient
		result.Explanation = prependWarning(in.LowEvidence,
			"No relevant evidence found. Cannot verify this claim.")
		return result
	}

	system := s.buildPrompt(in, breakdown)
	user := fmt.Sprintf("Claim:\n%s\n\n%s", in.Claim, in.Buckets.Context())

	out, err := s.provider.Complete(ctx, system, user)
	if err != nil {
		result.Verdict = model.VerdictInsufficient
		result.Explanation = prependWarning(in.LowEvidence,
			"Unable to generate verification result.")
		return result
	}

	var resp synthesisResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		result.Verdict = model.VerdictInsufficient
		result.Explanation = prependWarning(in.LowEvidence,
			"Unable to parse verification result.")
		return result
	}

	result.Verdict = ParseVerdict(resp.Verdict)
	result.Explanation = prependWarning(in.LowEvidence, resp.Explanation)

	return result
}

// buildPrompt renders the decision rubric with the bucket counts inlined
func (s *Synthesizer) buildPrompt(in Input, breakdown model.EvidenceBreakdown) string {
	var sb strings.Builder

	sb.WriteString(languageInstruction(in.Language))
	sb.WriteString("\n\n")
	sb.WriteString("You are verifying a factual claim using categorized evidence.\n")
	fmt.Fprintf(&sb, "Evidence summary:\n")
	fmt.Fprintf(&sb, "- Supporting evidence: %d\n", breakdown.Support)
	fmt.Fprintf(&sb, "- Refuting evidence: %d\n", breakdown.Refute)
	fmt.Fprintf(&sb, "- Irrelevant evidence: %d (filtered out)\n\n", breakdown.Irrelevant)
	sb.WriteString("Based on the categorized evidence, classify the claim as:\n")
	sb.WriteString("- Supported: If supporting evidence is strong and refuting evidence is weak/absent\n")
	sb.WriteString("- Contradicted: If refuting evidence is strong and supporting evidence is weak/absent\n")
	sb.WriteString("- Insufficient evidence: If evidence is too weak, contradictory, or mostly irrelevant\n\n")
	sb.WriteString("In your explanation, mention:\n")
	sb.WriteString("1. Key supporting/refuting evidence\n")
	sb.WriteString("2. Why you reached this conclusion\n")
	sb.WriteString("3. Any uncertainty or conflicting information\n\n")
	if in.LowEvidence != "" {
		sb.WriteString(in.LowEvidence)
		sb.WriteString("\n")
	}
	if in.Temporal != "" {
		sb.WriteString(in.Temporal)
		sb.WriteString("\n")
	}
	sb.WriteString("IMPORTANT: Your entire response (verdict + explanation) must be in the language specified above.\n")
	sb.WriteString("Return JSON with fields: verdict, explanation.")

	return sb.String()
}

// prependWarning prefixes the explanation with the low-evidence warning,
// verbatim, when one is present
func prependWarning(warning, explanation string) string {
	if warning == "" {
		return explanation
	}
	return warning + "\n\n" + explanation
}
