package calendar

import (
	"fmt"
	"time"

	"github.com/lululau/rangecal/internal/dates"
)

// Month is one page of a calendar. Month is zero based: 0 is January.
type Month struct {
	Year  int
	Month int
}

// NewMonth returns a normalised Month, carrying overflowing months into the
// year.
func NewMonth(year, month int) Month {
	return Month{Year: year, Month: month}.Normalize()
}

// MonthOf returns the Month containing d.
func MonthOf(d dates.Date) Month {
	return Month{Year: d.Year, Month: int(d.Month) - 1}
}

// Normalize keeps the month within 0..11 by rolling the year value.
func (m Month) Normalize() Month {
	m.Year += floorDiv(m.Month, 12)
	m.Month = mod(m.Month, 12)
	return m
}

// Next moves to the following month.
func (m Month) Next() Month {
	return m.Add(1)
}

// Previous moves to the preceding month.
func (m Month) Previous() Month {
	return m.Add(-1)
}

// Add moves by n months.
func (m Month) Add(n int) Month {
	m.Month += n
	return m.Normalize()
}

// First returns the first day of the month.
func (m Month) First() dates.Date {
	return dates.Date{Year: m.Year, Month: time.Month(m.Month + 1), Day: 1}
}

// Day returns the given day of the month.
func (m Month) Day(day int) dates.Date {
	return dates.Date{Year: m.Year, Month: time.Month(m.Month + 1), Day: day}
}

// DaysInMonth returns the number of days in the month.
func (m Month) DaysInMonth() int {
	return time.Date(m.Year, time.Month(m.Month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingEmpty returns the number of blank cells before the first day in a
// Monday-first grid.
func (m Month) LeadingEmpty() int {
	return (int(m.First().Weekday()) + 6) % 7
}

// Contains reports whether d falls in the month.
func (m Month) Contains(d dates.Date) bool {
	return d.Year == m.Year && int(d.Month) == m.Month+1
}

// Supported reports whether the month's year lies in the range the service
// renders.
func (m Month) Supported() bool {
	return m.Year >= MinSupportedYear && m.Year <= MaxSupportedYear
}

// Title renders the month label, for example "Kwiecień 2025".
func (m Month) Title(names MonthNames) string {
	return fmt.Sprintf("%s %d", names[m.Month], m.Year)
}

// MonthNames is the fixed month-name table used for titles.
type MonthNames [12]string

// WeekdayNames holds column headers, Monday first.
type WeekdayNames [7]string

var (
	PolishMonths = MonthNames{
		"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
		"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
	}
	EnglishMonths = MonthNames{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	PolishWeekdays  = WeekdayNames{"Pn", "Wt", "Śr", "Cz", "Pt", "So", "Nd"}
	EnglishWeekdays = WeekdayNames{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
)

// Names bundles the label tables for one language.
type Names struct {
	Months   MonthNames
	Weekdays WeekdayNames
}

// NamesFor returns the label tables for "pl" or "en". Anything else gets
// the Polish tables.
func NamesFor(lang string) Names {
	if lang == "en" {
		return Names{Months: EnglishMonths, Weekdays: EnglishWeekdays}
	}
	return Names{Months: PolishMonths, Weekdays: PolishWeekdays}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
