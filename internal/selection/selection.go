// Package selection tracks the start/end pair chosen in a range picker and
// the rules that keep the pair ordered when days are picked out of order.
package selection

import (
	"fmt"
	"strings"

	"github.com/lululau/rangecal/internal/dates"
)

// State is the shape of the current selection.
type State int

const (
	Empty State = iota
	StartOnly
	// EndOnly is only reachable from initial field values; no click
	// produces it.
	EndOnly
	Range
)

func (s State) String() string {
	switch s {
	case StartOnly:
		return "start-only"
	case EndOnly:
		return "end-only"
	case Range:
		return "range"
	default:
		return "empty"
	}
}

// Side names the calendar a click came from.
type Side int

const (
	StartSide Side = iota
	EndSide
)

func (s Side) String() string {
	if s == EndSide {
		return "end"
	}
	return "start"
}

// ParseSide reads "start" or "end".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return StartSide, nil
	case "end":
		return EndSide, nil
	}
	return StartSide, fmt.Errorf("unknown calendar %q, want start or end", s)
}

// Selection holds the chosen start and end days. The zero value is Empty.
type Selection struct {
	start dates.Date
	end   dates.Date
}

// New builds a Selection from already parsed days. An end that precedes the
// start is dropped, the same way a start click past the end drops it.
func New(start, end dates.Date) Selection {
	s := Selection{start: start, end: end}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		s.end = dates.Date{}
	}
	return s
}

// FromFields parses the two DD.MM.YYYY field values. Values that do not
// parse are treated as absent; the returned errors say which ones.
func FromFields(startValue, endValue string) (Selection, []error) {
	var errs []error
	start, err := parseOptional(startValue)
	if err != nil {
		errs = append(errs, err)
	}
	end, err := parseOptional(endValue)
	if err != nil {
		errs = append(errs, err)
	}
	return New(start, end), errs
}

func parseOptional(v string) (dates.Date, error) {
	if v == "" {
		return dates.Date{}, nil
	}
	return dates.ParseField(v)
}

func (s Selection) Start() dates.Date { return s.start }
func (s Selection) End() dates.Date   { return s.end }

// State derives the selection state from which days are set.
func (s Selection) State() State {
	switch {
	case s.start.IsZero() && s.end.IsZero():
		return Empty
	case s.end.IsZero():
		return StartOnly
	case s.start.IsZero():
		return EndOnly
	default:
		return Range
	}
}

// Click applies a day pick from the given calendar.
//
// A start pick after the current end clears the end. An end pick before the
// current start moves the start onto the same day.
func (s *Selection) Click(side Side, d dates.Date) {
	if d.IsZero() {
		return
	}
	switch side {
	case StartSide:
		s.start = d
		if !s.end.IsZero() && d.After(s.end) {
			s.end = dates.Date{}
		}
	case EndSide:
		s.end = d
		if !s.start.IsZero() && d.Before(s.start) {
			s.start = d
		}
	}
}

// Fields returns the two field values, empty when a day is absent.
func (s Selection) Fields() (start, end string) {
	return s.start.Field(), s.end.Field()
}

// Flags describes how one day relates to the selection. At most one flag is
// set.
type Flags struct {
	SingleDay bool
	Start     bool
	End       bool
	InRange   bool
}

// Flags classifies d. Precedence is single day, start, end, then in-range.
func (s Selection) Flags(d dates.Date) Flags {
	if d.IsZero() {
		return Flags{}
	}
	isStart := !s.start.IsZero() && d == s.start
	isEnd := !s.end.IsZero() && d == s.end
	switch {
	case isStart && isEnd:
		return Flags{SingleDay: true}
	case isStart:
		return Flags{Start: true}
	case isEnd:
		return Flags{End: true}
	case s.State() == Range && d.After(s.start) && d.Before(s.end):
		return Flags{InRange: true}
	}
	return Flags{}
}

// Any reports whether any flag is set.
func (f Flags) Any() bool {
	return f.SingleDay || f.Start || f.End || f.InRange
}

// Tag returns the presentational class for the flags.
func (f Flags) Tag() string {
	switch {
	case f.SingleDay:
		return "selected"
	case f.Start:
		return "start-date"
	case f.End:
		return "end-date"
	case f.InRange:
		return "in-range"
	}
	return ""
}
