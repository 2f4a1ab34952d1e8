package temporal

import (
	"strings"
	"time"

	"github.com/veristat/veristat/internal/model"
)

// Soft bounds applied when a claim carries no time reference: evidence older
// than two years is flagged as stale, evidence up to a month ahead tolerated.
const (
	noReferenceLookbackDays  = 730
	noReferenceLookaheadDays = 30
)

// WindowFor derives the inclusive date window a claim's time expression
// allows, computed against the parsed date. Returns false when no date was
// resolved; callers must treat that as "no constraint", not as an error.
//
// The policy is table driven:
//
//	specific_recent              [date-1d, date+1d]  (timezone tolerance)
//	relative_recent  "week"      [date-14d, date-7d]
//	relative_recent  otherwise   [date-7d, date]
//	relative_past    "year"      the full previous calendar year
//	relative_past    "month"     the full previous calendar month
//	relative_past    otherwise   [date-60d, date]
//	no_time_reference            [date-730d, date+30d] (staleness hint only)
func WindowFor(t model.NormalizedTime) (model.TimeWindow, bool) {
	if !t.HasDate() {
		return model.TimeWindow{}, false
	}

	ref := dateOnly(*t.ParsedDate)
	expr := t.OriginalExpression

	switch t.TimeType {
	case model.TimeSpecificRecent:
		return window(ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1)), true

	case model.TimeRelativeRecent:
		if mentionsWeek(expr) {
			return window(ref.AddDate(0, 0, -14), ref.AddDate(0, 0, -7)), true
		}
		return window(ref.AddDate(0, 0, -7), ref), true

	case model.TimeRelativePast:
		switch {
		case mentionsYear(expr):
			year := ref.Year() - 1
			return window(
				time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
			), true
		case mentionsMonth(expr):
			return previousMonthWindow(ref), true
		default:
			return window(ref.AddDate(0, 0, -60), ref), true
		}

	default: // no_time_reference
		return window(
			ref.AddDate(0, 0, -noReferenceLookbackDays),
			ref.AddDate(0, 0, noReferenceLookaheadDays),
		), true
	}
}

// previousMonthWindow covers the full calendar month preceding ref's month,
// rolling the year back when ref is in January.
func previousMonthWindow(ref time.Time) model.TimeWindow {
	year, month := ref.Year(), ref.Month()
	if month == time.January {
		year, month = year-1, time.December
	} else {
		month--
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1) // last day of that month

	return window(start, end)
}

func window(start, end time.Time) model.TimeWindow {
	return model.TimeWindow{Start: start, End: end}
}

// dateOnly truncates a timestamp to a UTC calendar date so all window and
// deviation arithmetic is exact in whole days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// The expression checks accept English words and their common Chinese
// equivalents, matching what the normalizer sees in claims.

func mentionsWeek(expr string) bool {
	return strings.Contains(strings.ToLower(expr), "week") || strings.Contains(expr, "週") || strings.Contains(expr, "周")
}

func mentionsYear(expr string) bool {
	return strings.Contains(strings.ToLower(expr), "year") || strings.Contains(expr, "年")
}

func mentionsMonth(expr string) bool {
	return strings.Contains(strings.ToLower(expr), "month") || strings.Contains(expr, "月")
}
