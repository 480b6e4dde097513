// Package weekly implements the weekly-hours picker: a Monday-first grid of
// weekdays by hour slots whose selected cells are stored as JSON.
package weekly

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
)

// Default working window, [7, 15).
const (
	DefaultStartHour = 7
	DefaultEndHour   = 15
)

var (
	// ErrInvalidWindow is returned for an hour window that is empty or not
	// within 0..24.
	ErrInvalidWindow = errors.New("invalid hour window")
	// ErrOutOfWindow is returned when toggling an hour outside the window.
	ErrOutOfWindow = errors.New("hour outside window")
)

// Days lists the JSON keys of the grid rows, Monday first.
var Days = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayIndex maps a weekday to its Monday-first row.
func DayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Grid holds the selected hour slots for one week.
type Grid struct {
	startHour int
	endHour   int
	cells     [7]map[int]bool
}

// New returns an empty grid covering hours [startHour, endHour).
func New(startHour, endHour int) (*Grid, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidWindow, startHour, endHour)
	}
	g := &Grid{startHour: startHour, endHour: endHour}
	for i := range g.cells {
		g.cells[i] = map[int]bool{}
	}
	return g, nil
}

// Window returns the hour range covered by the grid.
func (g *Grid) Window() (startHour, endHour int) {
	return g.startHour, g.endHour
}

// Selected reports whether the slot is selected.
func (g *Grid) Selected(day, hour int) bool {
	if day < 0 || day >= len(g.cells) {
		return false
	}
	return g.cells[day][hour]
}

// Toggle flips one slot. day is the Monday-first row.
func (g *Grid) Toggle(day, hour int) error {
	if day < 0 || day >= len(g.cells) {
		return fmt.Errorf("day %d out of range", day)
	}
	if hour < g.startHour || hour >= g.endHour {
		return fmt.Errorf("%w: %d", ErrOutOfWindow, hour)
	}
	if g.cells[day][hour] {
		delete(g.cells[day], hour)
	} else {
		g.cells[day][hour] = true
	}
	return nil
}

// Clear removes every selection.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = map[int]bool{}
	}
}

// Hours counts the selected slots.
func (g *Grid) Hours() int {
	n := 0
	for _, day := range g.cells {
		n += len(day)
	}
	return n
}

// MarshalJSON encodes the grid as {"monday":[7,8],...}; days without
// selections are omitted and hours are sorted.
func (g *Grid) MarshalJSON() ([]byte, error) {
	out := make(map[string][]int)
	for i, day := range g.cells {
		if len(day) == 0 {
			continue
		}
		hours := make([]int, 0, len(day))
		for h := range day {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		out[Days[i]] = hours
	}
	return json.Marshal(out)
}

// Value returns the JSON form used by the host field.
func (g *Grid) Value() string {
	data, err := g.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Decode reads a stored value into g, replacing its selections. Unknown day
// keys and hours outside the window are dropped.
func (g *Grid) Decode(value string) error {
	g.Clear()
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		return nil
	}
	var raw map[string][]int
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return fmt.Errorf("failed to parse weekly value: %w", err)
	}
	for i, key := range Days {
		for _, h := range raw[key] {
			if h >= g.startHour && h < g.endHour {
				g.cells[i][h] = true
			}
		}
	}
	return nil
}

// Load builds a grid from a stored value. A value that does not parse
// leaves the grid empty and is logged.
func Load(ctx context.Context, value string, startHour, endHour int) (*Grid, error) {
	g, err := New(startHour, endHour)
	if err != nil {
		return nil, err
	}
	if err := g.Decode(value); err != nil {
		ctxlog.Logger(ctx).Warn("ignoring malformed weekly value", "error", err)
	}
	return g, nil
}
