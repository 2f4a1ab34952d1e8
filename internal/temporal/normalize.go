package temporal

import (
	"context"
	"fmt"
	"time"

	"github.com/veristat/veristat/internal/llm"
	"github.com/veristat/veristat/internal/model"
)

// Normalizer wraps the generative service behind the time-normalization
// contract. Every method degrades on failure: a malformed response or a
// transport error yields "no temporal constraint", never a rejection.
type Normalizer struct {
	provider llm.Provider
}

// NewNormalizer creates a new normalizer backed by the given provider
func NewNormalizer(provider llm.Provider) *Normalizer {
	return &Normalizer{provider: provider}
}

const normalizeSystemPrompt = `You are a time expression parser. Parse ANY time expression in any language into a standard date.

Handle expressions like:
- Absolute: "2025-05-01", "May 2025"
- Relative recent: "today", "yesterday", "今天", "昨天", "this week"
- Relative past: "last year", "去年", "上個月", "last month"
- Day references with number: "昨(31日)", "31日", "yesterday (31st)" - interpret relative to reference date's month/year

CRITICAL for day number references:
- If reference date is 2026-01-01 and text says "昨(31日)" or "yesterday 31st", this means 2025-12-31 (previous month)
- If reference date is 2026-02-01 and text says "昨(31日)", this means 2026-01-31 (previous day)
- Always consider: is this day number BEFORE the reference date? Then use previous month/year if needed

Return JSON with this exact structure:
{
  "parsed_date": "YYYY-MM-DD",
  "confidence": "high" or "medium" or "low",
  "time_type": "specific_recent" or "relative_recent" or "relative_past" or "no_time_reference",
  "explanation": "brief explanation"
}

Time type definitions:
- specific_recent: today, yesterday, 今天, 昨天
- relative_recent: this week, last week, recently, 最近, 上週
- relative_past: last year, last month, 去年, 上個月
- no_time_reference: no time information found`

type normalizeResponse struct {
	ParsedDate  string `json:"parsed_date"`
	Confidence  string `json:"confidence"`
	TimeType    string `json:"time_type"`
	Explanation string `json:"explanation"`
}

// Normalize resolves a time expression to a concrete date relative to
// referenceDate. Parsing failures return a no_time_reference result with
// low confidence.
func (n *Normalizer) Normalize(ctx context.Context, expression string, referenceDate time.Time) model.NormalizedTime {
	user := fmt.Sprintf(`Current reference date: %s

Parse this time expression: "%s"

Return ONLY the JSON, no other text.`, referenceDate.Format("2006-01-02"), expression)

	out, err := n.provider.Complete(ctx, normalizeSystemPrompt, user)
	if err != nil {
		return model.NoTimeReference(expression)
	}

	var resp normalizeResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		return model.NoTimeReference(expression)
	}

	result := model.NormalizedTime{
		Confidence:         parseConfidence(resp.Confidence),
		TimeType:           parseTimeType(resp.TimeType),
		OriginalExpression: expression,
		Explanation:        resp.Explanation,
	}

	if resp.ParsedDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", resp.ParsedDate, time.UTC); err == nil {
			result.ParsedDate = &parsed
		}
	}

	// A date is required for every type except no_time_reference; without
	// one the classification is unusable and filtering must stay disabled.
	if result.ParsedDate == nil && result.TimeType != model.TimeNoReference {
		return model.NoTimeReference(expression)
	}

	return result
}

const extractClaimTimePrompt = `You are a time expression extractor. Extract ANY time-related words or phrases from the text.

Look for:
- Absolute dates: "2025-05-01", "May 2025"
- Relative time: "today", "yesterday", "recently", "last year"
- Chinese time: "今天", "昨天", "去年", "上個月", "最近", "日前"

Return JSON:
{
  "has_time_reference": true or false,
  "time_expression": "the extracted time expression" or null
}`

type claimTimeResponse struct {
	HasTimeReference bool   `json:"has_time_reference"`
	TimeExpression   string `json:"time_expression"`
}

// ExtractClaimTime pulls the time expression out of a claim, if any.
// Failures report no expression.
func (n *Normalizer) ExtractClaimTime(ctx context.Context, claim string) (string, bool) {
	user := fmt.Sprintf("Extract time expression from this text:\n\n\"%s\"\n\nReturn ONLY the JSON.", claim)

	out, err := n.provider.Complete(ctx, extractClaimTimePrompt, user)
	if err != nil {
		return "", false
	}

	var resp claimTimeResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		return "", false
	}

	if !resp.HasTimeReference || resp.TimeExpression == "" {
		return "", false
	}
	return resp.TimeExpression, true
}

const extractEvidenceTimePrompt = `You are a publication date and event time extractor. Extract BOTH from the text:
1. Publication/source date (when the article was published)
2. Event time expressions (relative time like "去年", "last year")

Look for:
- Explicit dates: "Published on 2025-05-01", "2025年5月發布"
- Metadata dates: dates near the beginning or end of text
- Event dates: "occurred on", "happened on", "took place on"
- Relative time: "去年", "last year", "上個月"

Return JSON:
{
  "publish_date": "YYYY-MM-DD or original date string" or null,
  "time_expression": "the time expression from content" or null
}`

type evidenceTimeResponse struct {
	PublishDate    string `json:"publish_date"`
	TimeExpression string `json:"time_expression"`
}

// EvidenceTime holds the raw time signals extracted from an evidence text
type EvidenceTime struct {
	PublishDate    string
	TimeExpression string
}

// ExtractEvidenceTime pulls the publication date and any event time
// expression out of an evidence document. Failures report neither.
func (n *Normalizer) ExtractEvidenceTime(ctx context.Context, evidenceText string) EvidenceTime {
	// Only the head of the document carries publication metadata
	snippet := evidenceText
	if runes := []rune(snippet); len(runes) > 500 {
		snippet = string(runes[:500]) + "..."
	}

	user := fmt.Sprintf("Extract publication date and time expression from this text:\n\n\"%s\"\n\nReturn ONLY the JSON.", snippet)

	out, err := n.provider.Complete(ctx, extractEvidenceTimePrompt, user)
	if err != nil {
		return EvidenceTime{}
	}

	var resp evidenceTimeResponse
	if err := llm.ParseJSON(out, &resp); err != nil {
		return EvidenceTime{}
	}

	return EvidenceTime{
		PublishDate:    resp.PublishDate,
		TimeExpression: resp.TimeExpression,
	}
}

// NormalizeEvidence resolves the extracted evidence time signals into one
// NormalizedTime, preferring the explicit publication date over a relative
// event expression.
func (n *Normalizer) NormalizeEvidence(ctx context.Context, et EvidenceTime, referenceDate time.Time) model.NormalizedTime {
	if et.PublishDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", et.PublishDate, time.UTC); err == nil {
			return model.NormalizedTime{
				ParsedDate:         &parsed,
				Confidence:         model.ConfidenceHigh,
				TimeType:           model.TimeSpecificRecent,
				OriginalExpression: et.PublishDate,
			}
		}
		// Non-ISO date strings go through the generative parser
		return n.Normalize(ctx, et.PublishDate, referenceDate)
	}

	if et.TimeExpression != "" {
		return n.Normalize(ctx, et.TimeExpression, referenceDate)
	}

	return model.NoTimeReference("")
}

func parseConfidence(s string) model.Confidence {
	switch model.Confidence(s) {
	case model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow:
		return model.Confidence(s)
	default:
		return model.ConfidenceLow
	}
}

func parseTimeType(s string) model.TimeType {
	switch model.TimeType(s) {
	case model.TimeSpecificRecent, model.TimeRelativeRecent, model.TimeRelativePast:
		return model.TimeType(s)
	default:
		return model.TimeNoReference
	}
}
