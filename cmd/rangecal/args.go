package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lululau/rangecal/internal/calendar"
)

// parseMonthArgs reads the optional [year] [month] arguments. A single
// number in 1-12 is a month of the current year, anything else a year shown
// from January. ok is false when no argument was given.
func parseMonthArgs(args []string, now time.Time) (month calendar.Month, ok bool, err error) {
	year := now.Year()
	m := int(now.Month())

	switch len(args) {
	case 0:
		return calendar.Month{}, false, nil
	case 1:
		val, err := parseNumber(args[0], "month/year")
		if err != nil {
			return calendar.Month{}, false, err
		}
		if val >= 1 && val <= 12 {
			m = val
		} else {
			year = val
			m = 1
		}
	case 2:
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return calendar.Month{}, false, err
		}
		mm, err := parseNumber(args[1], "month")
		if err != nil {
			return calendar.Month{}, false, err
		}
		if mm < 1 || mm > 12 {
			return calendar.Month{}, false, fmt.Errorf("month must be between 1 and 12 (got %d)", mm)
		}
		year, m = y, mm
	default:
		return calendar.Month{}, false, errors.New("too many arguments, see --help")
	}
	if year < calendar.MinSupportedYear || year > calendar.MaxSupportedYear {
		return calendar.Month{}, false, calendar.ErrYearOutOfRange
	}
	return calendar.NewMonth(year, m-1), true, nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}
