package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a string cannot be read as a calendar day.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without a time component. The zero value means
// "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the Date for year/month/day, normalising overflowing values
// the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime drops the clock part of t, keeping the day as seen in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is absent.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays moves d by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Key formats d as YYYY-MM-DD, the layout used by holiday lists.
func (d Date) Key() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Field formats d as DD.MM.YYYY, the layout of the form fields. Absent
// dates format as the empty string.
func (d Date) Field() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

func (d Date) String() string {
	return d.Key()
}

// ParseField reads a DD.MM.YYYY value. One-digit days and months are
// accepted, days that do not exist in the month are not.
func ParseField(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return build(s, parts[2], parts[1], parts[0])
}

// ParseKey reads a YYYY-MM-DD value.
func ParseKey(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return build(s, parts[0], parts[1], parts[2])
}

// Today returns the current day as seen by now.
func Today(now func() time.Time) Date {
	return FromTime(now())
}

func build(raw, ys, ms, ds string) (Date, error) {
	var n [3]int
	for i, part := range []string{ys, ms, ds} {
		if part == "" || len(part) > 4 {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		n[i] = v
	}
	year, month, day := n[0], n[1], n[2]
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	d := New(year, time.Month(month), day)
	if d.Day != day || int(d.Month) != month {
		return Date{}, fmt.Errorf("%w: %q: day out of range", ErrInvalidDate, raw)
	}
	return d, nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
