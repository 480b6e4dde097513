package calendar

import (
	"testing"
	"time"

	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/holidays"
)

func fixedNow() time.Time {
	return time.Date(2025, 4, 10, 15, 30, 0, 0, time.Local)
}

func TestMonthCellCount(t *testing.T) {
	svc := NewService(WithNow(fixedNow))
	for year := 2023; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			m := Month{year, month}
			view, err := svc.Month(m)
			if err != nil {
				t.Fatalf("Month(%+v) returned error: %v", m, err)
			}
			lead := m.LeadingEmpty()
			if lead < 0 || lead > 6 {
				t.Fatalf("leading empty cells out of range: %d", lead)
			}
			if len(view.Cells) != lead+m.DaysInMonth() {
				t.Fatalf("Month(%+v) has %d cells, want %d", m, len(view.Cells), lead+m.DaysInMonth())
			}
			for i, cell := range view.Cells {
				if (i < lead) != cell.Empty {
					t.Fatalf("cell %d of %+v: Empty=%v", i, m, cell.Empty)
				}
				if cell.Empty && cell.Interactive() {
					t.Fatalf("empty cell must not be interactive")
				}
				if !cell.Empty && cell.Date.Day != i-lead+1 {
					t.Fatalf("cell %d holds day %d", i, cell.Date.Day)
				}
			}
		}
	}
}

func TestMonthFlagsToday(t *testing.T) {
	svc := NewService(WithNow(fixedNow))
	view, err := svc.Month(Month{2025, 3})
	if err != nil {
		t.Fatalf("Month returned error: %v", err)
	}
	found := 0
	for _, cell := range view.Cells {
		if cell.IsToday {
			found++
			if cell.Date.Day != 10 {
				t.Fatalf("expected IsToday on 10th, got %d", cell.Date.Day)
			}
		}
	}
	if found != 1 {
		t.Fatalf("expected exactly one today cell, got %d", found)
	}
	if weeks := view.Weeks(); len(weeks) != 5 || len(weeks[4]) != 3 {
		t.Fatalf("April 2025 should be 5 rows ending in a short row, got %d", len(weeks))
	}
}

func TestClassification(t *testing.T) {
	svc := NewService(
		WithNow(fixedNow),
		WithHolidays(holidays.NewSet(dates.New(2025, time.April, 21))),
		WithRules(Rules{DisablePastDates: true}),
	)
	tests := []struct {
		day         int
		holiday     bool
		past        bool
		interactive bool
	}{
		{9, false, true, false},
		{10, false, false, true},
		{15, false, false, true},
		{21, true, false, false},
	}
	for _, tt := range tests {
		d := svc.Classify(dates.New(2025, time.April, tt.day))
		if d.Holiday != tt.holiday || d.PastDisabled != tt.past || d.Interactive() != tt.interactive {
			t.Fatalf("day %d classified as %+v", tt.day, d)
		}
	}
}

func TestPastDatesAllowedByDefault(t *testing.T) {
	svc := NewService(WithNow(fixedNow))
	if d := svc.Classify(dates.New(2020, time.January, 1)); !d.Interactive() {
		t.Fatalf("past days should be selectable unless disabled: %+v", d)
	}
}

func TestWeekendPolicies(t *testing.T) {
	saturday := dates.New(2025, time.April, 12)
	monday := dates.New(2025, time.April, 14)

	cosmetic := NewService(WithNow(fixedNow), WithRules(Rules{HighlightWeekends: true}))
	if d := cosmetic.Classify(saturday); !d.Weekend || !d.Interactive() {
		t.Fatalf("cosmetic weekend should be tagged but clickable: %+v", d)
	}
	blocking := NewService(WithNow(fixedNow), WithRules(Rules{HighlightWeekends: true, WeekendPolicy: WeekendBlocking}))
	if d := blocking.Classify(saturday); !d.Weekend || d.Interactive() {
		t.Fatalf("blocking weekend should not be clickable: %+v", d)
	}
	if d := blocking.Classify(monday); d.Weekend || !d.Interactive() {
		t.Fatalf("weekday should be untouched: %+v", d)
	}
	off := NewService(WithNow(fixedNow), WithRules(Rules{WeekendPolicy: WeekendBlocking}))
	if d := off.Classify(saturday); d.Weekend || !d.Interactive() {
		t.Fatalf("weekend policy needs highlighting enabled: %+v", d)
	}
}

func TestBounds(t *testing.T) {
	svc := NewService(WithNow(fixedNow), WithRules(Rules{
		MinDate: dates.New(2025, time.April, 5),
		MaxDate: dates.New(2025, time.April, 25),
	}))
	for day, want := range map[int]bool{4: false, 5: true, 25: true, 26: false} {
		if got := svc.Classify(dates.New(2025, time.April, day)).Interactive(); got != want {
			t.Fatalf("day %d interactive=%v want %v", day, got, want)
		}
	}
}

func TestTags(t *testing.T) {
	svc := NewService(
		WithNow(fixedNow),
		WithHolidays(holidays.NewSet(dates.New(2025, time.April, 21))),
		WithRules(Rules{DisablePastDates: true, HighlightWeekends: true}),
	)
	tags := svc.Classify(dates.New(2025, time.April, 5)).Tags()
	want := []string{"disabled", "weekend"}
	if len(tags) != len(want) || tags[0] != want[0] || tags[1] != want[1] {
		t.Fatalf("Tags()=%v want %v", tags, want)
	}
	if tags := (Day{Empty: true}).Tags(); len(tags) != 1 || tags[0] != "empty" {
		t.Fatalf("empty cell tags=%v", tags)
	}
}

func TestLunarLabels(t *testing.T) {
	svc := NewService(WithNow(fixedNow), WithLunar(true))
	view, err := svc.Month(Month{2025, 10})
	if err != nil {
		t.Fatalf("Month returned error: %v", err)
	}
	for _, cell := range view.Cells {
		if !cell.Empty && cell.Secondary == "" {
			t.Fatalf("expected a lunar label for %v", cell.Date)
		}
	}
	plain := NewService(WithNow(fixedNow))
	if d := plain.Classify(dates.New(2025, time.November, 1)); d.Secondary != "" {
		t.Fatalf("lunar labels should be off by default")
	}
}

func TestInvalidMonth(t *testing.T) {
	svc := NewService()
	if _, err := svc.Month(Month{2024, 12}); err == nil {
		t.Fatalf("expected error for invalid month")
	}
	if _, err := svc.Month(Month{10000, 0}); err == nil {
		t.Fatalf("expected error for year out of range")
	}
}
