package model

import (
	"fmt"
	"time"
)

// Confidence grades how reliable a time-expression parse is
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// TimeType classifies the kind of time reference found in text
type TimeType string

const (
	TimeSpecificRecent TimeType = "specific_recent"   // today, yesterday, 今天, 昨天
	TimeRelativeRecent TimeType = "relative_recent"   // this week, recently, 最近, 上週
	TimeRelativePast   TimeType = "relative_past"     // last year, last month, 去年, 上個月
	TimeNoReference    TimeType = "no_time_reference" // no time information found
)

// NormalizedTime is the normalized form of a time expression.
// ParsedDate is nil only when the text carried no time reference or parsing
// failed; absence disables temporal filtering for the carrying object rather
// than signalling an error.
type NormalizedTime struct {
	ParsedDate         *time.Time `json:"parsed_date,omitempty"`
	Confidence         Confidence `json:"confidence"`
	TimeType           TimeType   `json:"time_type"`
	OriginalExpression string     `json:"original_expression,omitempty"`
	Explanation        string     `json:"explanation,omitempty"`
}

// HasDate reports whether a concrete date was resolved
func (n NormalizedTime) HasDate() bool {
	return n.ParsedDate != nil
}

// NoTimeReference builds the degraded result used whenever normalization
// cannot produce a date.
func NoTimeReference(expression string) NormalizedTime {
	return NormalizedTime{
		Confidence:         ConfidenceLow,
		TimeType:           TimeNoReference,
		OriginalExpression: expression,
	}
}

// TimeWindow is an inclusive date range; Start never exceeds End
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the window (bounds inclusive)
func (w TimeWindow) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s ~ %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// TemporalStatus is the outcome of a temporal relevance check
type TemporalStatus string

const (
	TemporalRelevant     TemporalStatus = "relevant"
	TemporalTooOld       TemporalStatus = "too_old"
	TemporalTooRecent    TemporalStatus = "too_recent"
	TemporalUnknown      TemporalStatus = "unknown"       // claim window could not be derived
	TemporalNoConstraint TemporalStatus = "no_constraint" // claim or evidence carries no usable date
)

// TemporalRelevance records the advisory temporal check for one evidence
// item. The check never excludes evidence; the orchestrator keeps the item
// and surfaces a warning instead.
type TemporalRelevance struct {
	IsRelevant    bool           `json:"is_relevant"`
	Status        TemporalStatus `json:"status"`
	ExpectedRange string         `json:"expected_range"` // "YYYY-MM-DD ~ YYYY-MM-DD", "N/A" or "unknown"
	EvidenceDate  string         `json:"evidence_date"`
	DeviationDays int            `json:"deviation_days"`
	Explanation   string         `json:"explanation"`
}
