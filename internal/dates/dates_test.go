package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "plain date", input: "2024-03-13", want: "2024-03-13", ok: true},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29", ok: true},
		{name: "non-leap feb 29", input: "2023-02-29", ok: false},
		{name: "feb 30", input: "2024-02-30", ok: false},
		{name: "month 13", input: "2024-13-01", ok: false},
		{name: "day zero", input: "2024-01-00", ok: false},
		{name: "missing padding", input: "2024-1-5", ok: false},
		{name: "garbage", input: "not-a-date", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "trailing text", input: "2024-03-13T00:00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if Format(got) != tt.want {
				t.Errorf("Format(Parse(%q)) = %q, want %q", tt.input, Format(got), tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Parse(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	// Walk a span that crosses a leap day and several month boundaries.
	d := Date(2023, 12, 15)
	for i := 0; i < 120; i++ {
		s := Format(d)
		back, ok := Parse(s)
		if !ok {
			t.Fatalf("Parse(%q) failed", s)
		}
		if !back.Equal(d) {
			t.Fatalf("round trip of %q produced %v", s, back)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestMonthEndDay(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2024, 1, 31},
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tt := range tests {
		if got := MonthEndDay(tt.year, tt.month); got != tt.want {
			t.Errorf("MonthEndDay(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestYearMonthAdd(t *testing.T) {
	tests := []struct {
		name  string
		start YearMonth
		delta int
		want  YearMonth
	}{
		{name: "zero", start: YearMonth{2024, 6}, delta: 0, want: YearMonth{2024, 6}},
		{name: "within year", start: YearMonth{2024, 3}, delta: 4, want: YearMonth{2024, 7}},
		{name: "roll forward", start: YearMonth{2024, 11}, delta: 3, want: YearMonth{2025, 2}},
		{name: "roll backward", start: YearMonth{2024, 2}, delta: -3, want: YearMonth{2023, 11}},
		{name: "multi year forward", start: YearMonth{2024, 1}, delta: 25, want: YearMonth{2026, 2}},
		{name: "multi year backward", start: YearMonth{2024, 1}, delta: -13, want: YearMonth{2022, 12}},
		{name: "december forward", start: YearMonth{2024, 12}, delta: 1, want: YearMonth{2025, 1}},
		{name: "january backward", start: YearMonth{2024, 1}, delta: -1, want: YearMonth{2023, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Add(tt.delta); got != tt.want {
				t.Errorf("%v.Add(%d) = %v, want %v", tt.start, tt.delta, got, tt.want)
			}
		})
	}
}

func TestYearMonthAddInverse(t *testing.T) {
	start := YearMonth{2024, 5}
	for delta := -60; delta <= 60; delta++ {
		if got := start.Add(delta).Add(-delta); got != start {
			t.Fatalf("Add(%d) then Add(%d) = %v, want %v", delta, -delta, got, start)
		}
	}
}

func TestResolveDay(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		spec  DaySpec
		clamp bool
		want  int
	}{
		{name: "plain day", year: 2024, month: 3, spec: DayOf(13), clamp: true, want: 13},
		{name: "end of month", year: 2024, month: 2, spec: EndOfMonth(), clamp: false, want: 29},
		{name: "end of non-leap feb", year: 2023, month: 2, spec: EndOfMonth(), clamp: false, want: 28},
		{name: "overflow clamped", year: 2024, month: 2, spec: DayOf(31), clamp: true, want: 29},
		{name: "overflow unclamped", year: 2024, month: 2, spec: DayOf(31), clamp: false, want: 31},
		{name: "day 30 in april", year: 2024, month: 4, spec: DayOf(30), clamp: true, want: 30},
		{name: "day 31 in april clamped", year: 2024, month: 4, spec: DayOf(31), clamp: true, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDay(tt.year, tt.month, tt.spec, tt.clamp); got != tt.want {
				t.Errorf("ResolveDay(%d, %d, %+v, %v) = %d, want %d",
					tt.year, tt.month, tt.spec, tt.clamp, got, tt.want)
			}
		})
	}
}

func TestAdjustForWeekend(t *testing.T) {
	tests := []struct {
		name string
		date string
		mode WeekendAdjust
		want string
	}{
		{name: "weekday untouched", date: "2024-03-13", mode: AdjustPrevious, want: "2024-03-13"},
		{name: "saturday to friday", date: "2024-04-13", mode: AdjustPrevious, want: "2024-04-12"},
		{name: "sunday to friday", date: "2024-04-14", mode: AdjustPrevious, want: "2024-04-12"},
		{name: "saturday to monday", date: "2024-04-13", mode: AdjustNext, want: "2024-04-15"},
		{name: "sunday to monday", date: "2024-04-14", mode: AdjustNext, want: "2024-04-15"},
		{name: "none leaves saturday", date: "2024-04-13", mode: AdjustNone, want: "2024-04-13"},
		{name: "crosses month boundary", date: "2024-06-01", mode: AdjustPrevious, want: "2024-05-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Parse(tt.date)
			if !ok {
				t.Fatalf("bad fixture date %q", tt.date)
			}
			if got := Format(AdjustForWeekend(d, tt.mode)); got != tt.want {
				t.Errorf("AdjustForWeekend(%s, %s) = %s, want %s", tt.date, tt.mode, got, tt.want)
			}
		})
	}
}
