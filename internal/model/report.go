package model

import "time"

// Verdict is the final classification of a single claim
type Verdict string

const (
	VerdictSupported    Verdict = "Supported"
	VerdictContradicted Verdict = "Contradicted"
	VerdictInsufficient Verdict = "Insufficient evidence"
)

// Credibility is the title-level classification in article mode
type Credibility string

const (
	CredibilityCredible   Credibility = "CREDIBLE"
	CredibilityMisleading Credibility = "MISLEADING"
	CredibilityUncertain  Credibility = "UNCERTAIN"
)

// VerificationResult is the terminal, immutable outcome of verifying one
// claim. Every code path in the pipeline yields a well-formed result; failures
// of external collaborators only degrade the verdict, never raise.
type VerificationResult struct {
	Verdict         Verdict           `json:"verdict"`
	Explanation     string            `json:"explanation"`
	EvidenceCount   int               `json:"evidence_count"`
	SearchQuery     string            `json:"search_query"`
	Breakdown       EvidenceBreakdown `json:"evidence_breakdown"`
	PreFiltered     int               `json:"pre_filtered,omitempty"`     // dropped by the topical pre-filter (topic mismatch, not evidentiary weakness)
	TemporalWarning string            `json:"temporal_warning,omitempty"` // first out-of-window warning, at most one surfaced
	Supporting      []EvidenceSummary `json:"supporting_evidence,omitempty"`
	Refuting        []EvidenceSummary `json:"refuting_evidence,omitempty"`
}

// DetailResult tags a VerificationResult with the article detail it verified
type DetailResult struct {
	Detail string `json:"detail"`
	VerificationResult
}

// ClaimResult tags a VerificationResult with its source claim (plain-text mode)
type ClaimResult struct {
	Claim string `json:"claim"`
	VerificationResult
}

// VerdictCounts tallies per-claim verdicts for aggregation
type VerdictCounts struct {
	Supported    int `json:"Supported"`
	Contradicted int `json:"Contradicted"`
	Insufficient int `json:"Insufficient evidence"`
}

// Add records one verdict in the tally
func (c *VerdictCounts) Add(v Verdict) {
	switch v {
	case VerdictSupported:
		c.Supported++
	case VerdictContradicted:
		c.Contradicted++
	default:
		c.Insufficient++
	}
}

// Total returns the number of verdicts tallied
func (c VerdictCounts) Total() int {
	return c.Supported + c.Contradicted + c.Insufficient
}

// TitleVerdict is the title-level credibility judgment for an article
type TitleVerdict struct {
	OverallCredibility Credibility   `json:"overall_credibility"`
	Explanation        string        `json:"explanation"`
	DetailSummary      VerdictCounts `json:"detail_summary"`
}

// Report modes
const (
	ModeNewsArticle = "news_article"
	ModePlainText   = "plain_text"
)

// Overall credibility levels for plain-text mode
const (
	CredibilityHigh    = "HIGH"
	CredibilityLow     = "LOW"
	CredibilityUnknown = "UNCERTAIN"
)

// Report is the complete verification output. Article mode fills the title
// fields, plain-text mode fills the claim fields; Mode says which.
type Report struct {
	Mode        string    `json:"mode"`
	GeneratedAt time.Time `json:"generated_at"`

	// Article mode (Title → Details → Evidence)
	Title            string         `json:"title,omitempty"`
	TitleVerdict     Credibility    `json:"title_verdict,omitempty"`
	TitleExplanation string         `json:"title_explanation,omitempty"`
	DetailSummary    *VerdictCounts `json:"detail_summary,omitempty"`
	Details          []DetailResult `json:"details,omitempty"`

	// Plain-text mode (claim based)
	OverallCredibility string        `json:"overall_credibility,omitempty"` // HIGH, LOW or UNCERTAIN
	Summary            string        `json:"summary,omitempty"`
	Claims             []ClaimResult `json:"claims,omitempty"`
}
