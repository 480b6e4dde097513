package holidays

import (
	"encoding/json"
	"sort"

	"github.com/lululau/rangecal/internal/dates"
)

// Set is a read-only collection of non-selectable days.
type Set struct {
	days map[dates.Date]struct{}
}

// NewSet builds a Set from the given days. Absent days are ignored.
func NewSet(days ...dates.Date) Set {
	s := Set{days: make(map[dates.Date]struct{}, len(days))}
	for _, d := range days {
		if !d.IsZero() {
			s.days[d] = struct{}{}
		}
	}
	return s
}

// Contains reports whether d is a holiday.
func (s Set) Contains(d dates.Date) bool {
	_, ok := s.days[d]
	return ok
}

// Len returns the number of holidays.
func (s Set) Len() int {
	return len(s.days)
}

// Keys returns the holidays as sorted YYYY-MM-DD strings.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.days))
	for d := range s.days {
		keys = append(keys, d.Key())
	}
	sort.Strings(keys)
	return keys
}

// YearSpan returns the earliest and latest year present.
func (s Set) YearSpan() (minYear, maxYear int, ok bool) {
	for d := range s.days {
		if !ok {
			minYear, maxYear, ok = d.Year, d.Year, true
			continue
		}
		minYear = min(minYear, d.Year)
		maxYear = max(maxYear, d.Year)
	}
	return minYear, maxYear, ok
}

// HolidayEntry is one day of the yearly holiday file layout.
type HolidayEntry struct {
	Holiday bool   `json:"holiday"`
	Name    string `json:"name"`
	Wage    int    `json:"wage"`
	Date    string `json:"date"`
	// Optional fields
	After  *bool  `json:"after,omitempty"`
	Target string `json:"target,omitempty"`
	Rest   *int   `json:"rest,omitempty"`
}

// UnmarshalJSON accepts the holiday field as either a boolean or a string;
// a non-empty string counts as true.
func (h *HolidayEntry) UnmarshalJSON(data []byte) error {
	type Alias HolidayEntry
	aux := &struct {
		Holiday interface{} `json:"holiday"`
		*Alias
	}{
		Alias: (*Alias)(h),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch v := aux.Holiday.(type) {
	case bool:
		h.Holiday = v
	case string:
		h.Holiday = v != ""
	default:
		h.Holiday = false
	}

	return nil
}

// YearlyData is the yearly holiday file layout: one element per year with
// MM-DD keyed entries. Entries with holiday=false are working days moved
// onto a weekend and are not part of a Set.
type YearlyData []struct {
	Year    string                   `json:"year"`
	Holiday map[string]*HolidayEntry `json:"holiday"`
}
