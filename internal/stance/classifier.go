// Package stance classifies each evidence item's relation to a claim and
// aggregates the classified items into buckets for verdict synthesis.
package stance

import (
	"context"
	"fmt"
	"strings"

	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
)

const classifySystemPrompt = "Analyze if the evidence supports, refutes, or is irrelevant to the claim.\n" +
	"Return ONLY one word: support / refute / irrelevant\n" +
	"Do not explain, just return the single word."

// Classifier labels evidence items via the generative service. A failed call
// degrades the item to irrelevant: weak evidence, not an error.
type Classifier struct {
	provider llm.Provider
}

// NewClassifier creates a new stance classifier
func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify labels one evidence item against the claim
func (c *Classifier) Classify(ctx context.Context, claim, evidenceTitle, evidenceBody string) model.Stance {
	user := fmt.Sprintf("Claim: %s\n\nEvidence:\nTitle: %s\nContent: %s", claim, evidenceTitle, evidenceBody)

	out, err := c.provider.Complete(ctx, classifySystemPrompt, user)
	if err != nil {
		return model.StanceIrrelevant
	}

	return ParseStance(out)
}

// ParseStance coerces a free-text classifier response to a stance label.
// The matching is deliberately tolerant to absorb wording variance: any
// response containing "support" counts as support, "refute" or "contradict"
// as refute, and everything else as irrelevant.
func ParseStance(s string) model.Stance {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "support"):
		return model.StanceSupport
	case strings.Contains(s, "refute"), strings.Contains(s, "contradict"):
		return model.StanceRefute
	default:
		return model.StanceIrrelevant
	}
}
