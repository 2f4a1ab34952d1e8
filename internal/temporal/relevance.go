package temporal

import (
	"fmt"
	"time"

	"github.com/veristat/veristat/internal/model"
)

// Check compares an evidence item's normalized time against the window a
// claim's time expression allows. The check is advisory: out-of-window
// evidence is annotated and warned about, never excluded, because discarding
// it risks false "insufficient evidence" outcomes. The failure mode guarded
// against is stale evidence being presented as current, which is a labeling
// problem rather than a retrieval problem.
//
// Rules, in order:
//  1. Claim has no time reference, or evidence has no resolvable date:
//     relevant with status no_constraint (absent dates are never penalized).
//  2. Claim window cannot be derived: relevant with status unknown (fail open).
//  3. Otherwise compare: inside the window is relevant with deviation 0;
//     before the start is too_old, after the end is too_recent, each with the
//     deviation in whole days.
func Check(claimTime, evidenceTime model.NormalizedTime) model.TemporalRelevance {
	if claimTime.TimeType == model.TimeNoReference || !evidenceTime.HasDate() {
		evidenceDate := "unknown"
		if evidenceTime.HasDate() {
			evidenceDate = dateOnly(*evidenceTime.ParsedDate).Format("2006-01-02")
		}
		return model.TemporalRelevance{
			IsRelevant:    true,
			Status:        model.TemporalNoConstraint,
			ExpectedRange: "N/A",
			EvidenceDate:  evidenceDate,
			DeviationDays: 0,
			Explanation:   "No time constraint on claim or evidence",
		}
	}

	win, ok := WindowFor(claimTime)
	if !ok {
		return model.TemporalRelevance{
			IsRelevant:    true,
			Status:        model.TemporalUnknown,
			ExpectedRange: "unknown",
			EvidenceDate:  dateOnly(*evidenceTime.ParsedDate).Format("2006-01-02"),
			DeviationDays: 0,
			Explanation:   "Cannot determine time range",
		}
	}

	evidenceDate := dateOnly(*evidenceTime.ParsedDate)

	result := model.TemporalRelevance{
		ExpectedRange: win.String(),
		EvidenceDate:  evidenceDate.Format("2006-01-02"),
	}

	switch {
	case evidenceDate.Before(win.Start):
		result.Status = model.TemporalTooOld
		result.DeviationDays = daysBetween(evidenceDate, win.Start)
		result.Explanation = fmt.Sprintf("Evidence is %d days older than expected range", result.DeviationDays)
	case evidenceDate.After(win.End):
		result.Status = model.TemporalTooRecent
		result.DeviationDays = daysBetween(win.End, evidenceDate)
		result.Explanation = fmt.Sprintf("Evidence is %d days newer than expected range", result.DeviationDays)
	default:
		result.IsRelevant = true
		result.Status = model.TemporalRelevant
		result.Explanation = "Evidence date falls within expected range"
	}

	return result
}

// daysBetween returns the whole days from a to b; both are UTC midnights
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
