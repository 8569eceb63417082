// Package dates provides the calendar arithmetic the billing engine is built
// on: strict date parsing, month-end computation, month offsets, day-of-month
// resolution with clamping, and weekend adjustment.
//
// All dates are midnight UTC. Using a single fixed time reference keeps every
// computation reproducible regardless of the host timezone.
package dates

import "time"

// Layout is the only date format that crosses the engine boundary.
const Layout = "2006-01-02"

// Parse parses a strict "YYYY-MM-DD" string. It reports ok=false for
// malformed strings and for calendar-invalid dates such as 2024-02-30.
func Parse(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	// time.Parse normalizes overflow days (Feb 30 -> Mar 1 or Mar 2),
	// so round-trip to catch calendar-invalid input.
	if t.Format(Layout) != s {
		return time.Time{}, false
	}
	return t, true
}

// Format renders a date as "YYYY-MM-DD". Inverse of Parse.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Date constructs a midnight-UTC date from components. The day must be valid
// for the month; callers resolve days through ResolveDay first.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// MonthEndDay returns the last day of the given month, leap-year correct.
func MonthEndDay(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// Of returns the YearMonth containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// Add returns the YearMonth delta months away, rolling year boundaries
// correctly for any signed delta.
func (ym YearMonth) Add(delta int) YearMonth {
	idx := ym.Year*12 + (ym.Month - 1) + delta
	y := idx / 12
	m := idx%12 + 1
	if m < 1 {
		// Go's integer division truncates toward zero, so negative
		// indices need one more borrow from the year.
		y--
		m += 12
	}
	return YearMonth{Year: y, Month: m}
}

// DaySpec is a day-of-month selector: either an explicit day (1-31) or the
// end of whatever month it is resolved against.
type DaySpec struct {
	Day        int
	EndOfMonth bool
}

// DayOf returns a DaySpec selecting an explicit day of month.
func DayOf(d int) DaySpec {
	return DaySpec{Day: d}
}

// EndOfMonth selects the last day of the month it is resolved against.
func EndOfMonth() DaySpec {
	return DaySpec{EndOfMonth: true}
}

// ResolveDay resolves a DaySpec against a concrete month. An end-of-month
// spec always yields the month's last day. An explicit day beyond the
// month's length yields the last day when clamp is set, and is otherwise
// passed through unchanged; in that case the caller must not construct a
// date from it.
func ResolveDay(year, month int, spec DaySpec, clamp bool) int {
	end := MonthEndDay(year, month)
	if spec.EndOfMonth {
		return end
	}
	if spec.Day > end && clamp {
		return end
	}
	return spec.Day
}

// WeekendAdjust selects how a payment date that lands on a weekend moves.
type WeekendAdjust string

// Weekend adjustment modes.
const (
	AdjustNone     WeekendAdjust = "none"
	AdjustNext     WeekendAdjust = "next"
	AdjustPrevious WeekendAdjust = "previous"
)

// AdjustForWeekend shifts a date one day at a time until it lands on a
// weekday. It is a no-op for AdjustNone or when the date is already a
// weekday.
func AdjustForWeekend(t time.Time, mode WeekendAdjust) time.Time {
	if mode != AdjustNext && mode != AdjustPrevious {
		return t
	}
	step := 1
	if mode == AdjustPrevious {
		step = -1
	}
	for isWeekend(t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
