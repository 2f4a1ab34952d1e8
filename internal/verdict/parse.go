// Package verdict synthesizes claim-level verdicts from stance buckets and
// rolls detail verdicts up into a title-level credibility judgment.
package verdict

import (
	"strings"

	"github.com/veristat/veristat/internal/model"
)

// ParseVerdict coerces a free-text verdict to the closed set. Matching is
// tolerant: "contradict" wins over "support" so that responses like
// "supporting evidence is contradicted" land on the safe side, and anything
// unrecognized degrades to Insufficient evidence.
func ParseVerdict(s string) model.Verdict {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "contradict"):
		return model.VerdictContradicted
	case strings.Contains(s, "support"):
		return model.VerdictSupported
	default:
		return model.VerdictInsufficient
	}
}

// ParseCredibility coerces a free-text credibility label to the closed set.
// "CREDIBLE" only counts when "MISLEADING" is absent because models sometimes
// answer "not credible, misleading"; "FALSE" also maps to misleading.
func ParseCredibility(s string) model.Credibility {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "CREDIBLE") && !strings.Contains(s, "MISLEADING"):
		return model.CredibilityCredible
	case strings.Contains(s, "MISLEADING"), strings.Contains(s, "FALSE"):
		return model.CredibilityMisleading
	default:
		return model.CredibilityUncertain
	}
}

// languageInstruction returns the response-language constraint prepended to
// every generative prompt that produces user-visible text.
func languageInstruction(lang model.Language) string {
	switch lang.Normalize() {
	case model.LanguageEn:
		return "CRITICAL: You MUST respond in English. All explanations must be in English."
	default:
		return "CRITICAL: You MUST respond in Traditional Chinese (繁體中文). All explanations must be in Traditional Chinese."
	}
}
