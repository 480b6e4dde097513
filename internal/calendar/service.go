package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"

	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/holidays"
	"github.com/lululau/rangecal/internal/selection"
)

// Supported Gregorian year range. Dates must format as four digit years.
const (
	MinSupportedYear = 1
	MaxSupportedYear = 9999
)

// Lunar labels are only available where the upstream library has tables.
const (
	minLunarYear = 1900
	maxLunarYear = 3000
)

// WeekendPolicy decides what highlighted weekends do.
type WeekendPolicy int

const (
	// WeekendCosmetic only tags weekend days.
	WeekendCosmetic WeekendPolicy = iota
	// WeekendBlocking also makes weekend days non-selectable.
	WeekendBlocking
)

// ParseWeekendPolicy reads "cosmetic" or "blocking".
func ParseWeekendPolicy(s string) (WeekendPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cosmetic":
		return WeekendCosmetic, nil
	case "blocking":
		return WeekendBlocking, nil
	}
	return WeekendCosmetic, fmt.Errorf("unknown weekend policy %q", s)
}

func (p WeekendPolicy) String() string {
	if p == WeekendBlocking {
		return "blocking"
	}
	return "cosmetic"
}

// Rules are the selectability constraints shared by both calendars.
type Rules struct {
	DisablePastDates  bool
	HighlightWeekends bool
	WeekendPolicy     WeekendPolicy
	// MinDate and MaxDate bound the selectable days, inclusive. Zero values
	// leave the bound open.
	MinDate dates.Date
	MaxDate dates.Date
}

// Day is one cell of a month grid.
type Day struct {
	Date  dates.Date
	Empty bool

	Holiday        bool
	PastDisabled   bool
	OutOfBounds    bool
	Weekend        bool
	WeekendBlocked bool
	IsToday        bool

	// Secondary is the lunar label when lunar labels are enabled.
	Secondary string

	Selection selection.Flags
}

// Interactive reports whether a click on the day does anything.
func (d Day) Interactive() bool {
	return !d.Empty && !d.Holiday && !d.PastDisabled && !d.OutOfBounds && !d.WeekendBlocked
}

// Tags returns the presentational classes of the day.
func (d Day) Tags() []string {
	if d.Empty {
		return []string{"empty"}
	}
	var tags []string
	if d.Holiday {
		tags = append(tags, "holiday")
	}
	if d.PastDisabled || d.OutOfBounds || d.WeekendBlocked {
		tags = append(tags, "disabled")
	}
	if d.Weekend {
		tags = append(tags, "weekend")
	}
	if d.IsToday {
		tags = append(tags, "today")
	}
	if tag := d.Selection.Tag(); tag != "" {
		tags = append(tags, tag)
	}
	return tags
}

// MonthView is a month laid out as a Monday-first grid: leading blank cells
// followed by one cell per day, without trailing padding.
type MonthView struct {
	Month Month
	Title string
	Cells []Day
}

// Weeks splits the cells into rows of seven; the last row may be short.
func (v MonthView) Weeks() [][]Day {
	var weeks [][]Day
	for i := 0; i < len(v.Cells); i += 7 {
		weeks = append(weeks, v.Cells[i:min(i+7, len(v.Cells))])
	}
	return weeks
}

// Service classifies days and builds month views.
type Service struct {
	now      func() time.Time
	holidays holidays.Set
	rules    Rules
	names    Names
	lunar    bool
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHolidays sets the holiday data for the service.
func WithHolidays(set holidays.Set) Option {
	return func(s *Service) {
		s.holidays = set
	}
}

// WithRules sets the selectability rules.
func WithRules(r Rules) Option {
	return func(s *Service) {
		s.rules = r
	}
}

// WithNames sets the month and weekday labels.
func WithNames(n Names) Option {
	return func(s *Service) {
		s.names = n
	}
}

// WithLunar enables lunar secondary labels.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:      time.Now,
		holidays: holidays.NewSet(),
		names:    NamesFor("pl"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// ErrYearOutOfRange indicates the requested year is unsupported.
	ErrYearOutOfRange = fmt.Errorf("year must be between %d and %d", MinSupportedYear, MaxSupportedYear)
	// ErrInvalidMonth indicates the month is not in the 0..11 range.
	ErrInvalidMonth = errors.New("month must be between 0 and 11")
)

// Names returns the label tables in use.
func (s *Service) Names() Names {
	return s.names
}

// Rules returns the selectability rules in use.
func (s *Service) Rules() Rules {
	return s.rules
}

// Today returns the current day according to the service clock.
func (s *Service) Today() dates.Date {
	return dates.Today(s.now)
}

// Month builds the grid for m. Today is read once for the whole pass.
func (s *Service) Month(m Month) (MonthView, error) {
	if !m.Supported() {
		return MonthView{}, ErrYearOutOfRange
	}
	if m.Month < 0 || m.Month > 11 {
		return MonthView{}, ErrInvalidMonth
	}

	today := s.Today()
	lead := m.LeadingEmpty()
	days := m.DaysInMonth()
	cells := make([]Day, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Day{Empty: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, s.classify(m.Day(d), today))
	}

	return MonthView{
		Month: m,
		Title: m.Title(s.names.Months),
		Cells: cells,
	}, nil
}

// Classify returns the classification of a single day.
func (s *Service) Classify(d dates.Date) Day {
	return s.classify(d, s.Today())
}

func (s *Service) classify(d dates.Date, today dates.Date) Day {
	day := Day{
		Date:    d,
		Holiday: s.holidays.Contains(d),
		IsToday: d == today,
	}
	day.PastDisabled = s.rules.DisablePastDates && d.Before(today)
	day.OutOfBounds = (!s.rules.MinDate.IsZero() && d.Before(s.rules.MinDate)) ||
		(!s.rules.MaxDate.IsZero() && d.After(s.rules.MaxDate))
	if s.rules.HighlightWeekends {
		wd := d.Weekday()
		day.Weekend = wd == time.Saturday || wd == time.Sunday
		day.WeekendBlocked = day.Weekend && s.rules.WeekendPolicy == WeekendBlocking
	}
	if s.lunar {
		day.Secondary = lunarLabel(d)
	}
	return day
}

// lunarLabel picks the label shown beneath the day number. Solar terms take
// precedence, followed by lunar month names on the first day of a lunar
// month.
func lunarLabel(d dates.Date) string {
	if d.Year < minLunarYear || d.Year > maxLunarYear {
		return ""
	}
	cal := calendarlib.BySolar(
		int64(d.Year),
		int64(d.Month),
		int64(d.Day),
		12, 0, 0,
	)
	if term := cal.Solar.CurrentSolarterm; term != nil {
		t := d.Time()
		if term.IsInDay(&t) {
			return term.Alias()
		}
	}
	dayAlias := cal.Lunar.DayAlias()
	if dayAlias == "初一" && cal.Lunar.MonthAlias() != "" {
		return cal.Lunar.MonthAlias()
	}
	return dayAlias
}
