package temporal

import (
	"testing"
	"time"

	"github.com/veristat/veristat/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalized(tt model.TimeType, parsed time.Time, expr string) model.NormalizedTime {
	return model.NormalizedTime{
		ParsedDate:         &parsed,
		Confidence:         model.ConfidenceHigh,
		TimeType:           tt,
		OriginalExpression: expr,
	}
}

func TestWindowFor_NoDate(t *testing.T) {
	_, ok := WindowFor(model.NoTimeReference("sometime"))
	if ok {
		t.Error("expected no window when no date was resolved")
	}
}

func TestWindowFor_SpecificRecent(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeSpecificRecent, date(2025, time.June, 15), "yesterday"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.June, 14)) {
		t.Errorf("start = %v, want 2025-06-14", win.Start)
	}
	if !win.End.Equal(date(2025, time.June, 16)) {
		t.Errorf("end = %v, want 2025-06-16", win.End)
	}
}

func TestWindowFor_RelativeRecentWeek(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativeRecent, date(2025, time.June, 15), "last week"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.June, 1)) {
		t.Errorf("start = %v, want 2025-06-01", win.Start)
	}
	if !win.End.Equal(date(2025, time.June, 8)) {
		t.Errorf("end = %v, want 2025-06-08", win.End)
	}
}

func TestWindowFor_RelativeRecentWeekChinese(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativeRecent, date(2025, time.June, 15), "上週"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.June, 1)) || !win.End.Equal(date(2025, time.June, 8)) {
		t.Errorf("window = %v, want 2025-06-01 ~ 2025-06-08", win)
	}
}

func TestWindowFor_RelativeRecentGeneric(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativeRecent, date(2025, time.June, 15), "recently"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.June, 8)) {
		t.Errorf("start = %v, want 2025-06-08", win.Start)
	}
	if !win.End.Equal(date(2025, time.June, 15)) {
		t.Errorf("end = %v, want 2025-06-15", win.End)
	}
}

func TestWindowFor_RelativePastYear(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativePast, date(2025, time.June, 15), "last year"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2024, time.January, 1)) {
		t.Errorf("start = %v, want 2024-01-01", win.Start)
	}
	if !win.End.Equal(date(2024, time.December, 31)) {
		t.Errorf("end = %v, want 2024-12-31", win.End)
	}
}

func TestWindowFor_RelativePastYearChinese(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativePast, date(2025, time.March, 1), "去年"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2024, time.January, 1)) || !win.End.Equal(date(2024, time.December, 31)) {
		t.Errorf("window = %v, want full 2024", win)
	}
}

func TestWindowFor_RelativePastMonth(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativePast, date(2025, time.June, 15), "last month"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.May, 1)) {
		t.Errorf("start = %v, want 2025-05-01", win.Start)
	}
	if !win.End.Equal(date(2025, time.May, 31)) {
		t.Errorf("end = %v, want 2025-05-31", win.End)
	}
}

func TestWindowFor_RelativePastMonthJanuaryRollover(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativePast, date(2025, time.January, 10), "上個月"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2024, time.December, 1)) {
		t.Errorf("start = %v, want 2024-12-01", win.Start)
	}
	if !win.End.Equal(date(2024, time.December, 31)) {
		t.Errorf("end = %v, want 2024-12-31", win.End)
	}
}

func TestWindowFor_RelativePastGeneric(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeRelativePast, date(2025, time.June, 15), "a while ago"))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.April, 16)) {
		t.Errorf("start = %v, want 2025-04-16", win.Start)
	}
	if !win.End.Equal(date(2025, time.June, 15)) {
		t.Errorf("end = %v, want 2025-06-15", win.End)
	}
}

func TestWindowFor_NoReferenceBounds(t *testing.T) {
	win, ok := WindowFor(normalized(model.TimeNoReference, date(2025, time.June, 15), ""))
	if !ok {
		t.Fatal("expected a window")
	}
	if !win.Start.Equal(date(2025, time.June, 15).AddDate(0, 0, -730)) {
		t.Errorf("start = %v, want 730 days back", win.Start)
	}
	if !win.End.Equal(date(2025, time.July, 15)) {
		t.Errorf("end = %v, want 2025-07-15", win.End)
	}
}

func TestWindowFor_TruncatesTimeOfDay(t *testing.T) {
	parsed := time.Date(2025, time.June, 15, 23, 45, 1, 0, time.FixedZone("X", 8*3600))
	win, ok := WindowFor(normalized(model.TimeSpecificRecent, parsed, "today"))
	if !ok {
		t.Fatal("expected a window")
	}
	if win.Start.Hour() != 0 || win.End.Hour() != 0 {
		t.Errorf("window bounds not truncated to midnight: %v", win)
	}
}

func TestTimeWindow_Contains(t *testing.T) {
	win := model.TimeWindow{Start: date(2025, time.June, 1), End: date(2025, time.June, 8)}

	if !win.Contains(date(2025, time.June, 1)) {
		t.Error("start bound should be inclusive")
	}
	if !win.Contains(date(2025, time.June, 8)) {
		t.Error("end bound should be inclusive")
	}
	if win.Contains(date(2025, time.May, 31)) {
		t.Error("day before start should be outside")
	}
	if win.Contains(date(2025, time.June, 9)) {
		t.Error("day after end should be outside")
	}
}
