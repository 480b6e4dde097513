package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/selection"
	"github.com/lululau/rangecal/internal/weekly"
	"github.com/lululau/rangecal/internal/widget"
)

// Click is a day picked in one of the calendars.
type Click struct {
	Side selection.Side
	Date dates.Date
}

// ParseClick reads "start:DD.MM.YYYY" or "end:DD.MM.YYYY".
func ParseClick(s string) (Click, error) {
	sideText, value, ok := strings.Cut(s, ":")
	if !ok {
		return Click{}, fmt.Errorf("click %q: want start:DD.MM.YYYY or end:DD.MM.YYYY", s)
	}
	side, err := selection.ParseSide(sideText)
	if err != nil {
		return Click{}, fmt.Errorf("click %q: %w", s, err)
	}
	d, err := dates.ParseField(value)
	if err != nil {
		return Click{}, fmt.Errorf("click %q: %w", s, err)
	}
	return Click{Side: side, Date: d}, nil
}

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer            io.Writer
	Widget            *widget.Widget
	Labels            Labels
	Clicks            []Click
	Width             int
	HolidayCacheValid bool
}

// RunPlain replays the clicks, each one after showing the clicked month in
// its calendar, and renders both calendars exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Widget == nil {
		return errors.New("no widget to render")
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = DefaultLabels
	}
	w := opts.Widget
	if w.Inert() {
		_, err := fmt.Fprintln(opts.Writer, "range calendar is inactive")
		return err
	}

	for _, c := range opts.Clicks {
		w.Show(c.Side, calendar.MonthOf(c.Date))
		if !w.Click(c.Side, c.Date) {
			if _, err := fmt.Fprintf(opts.Writer, "ignored %s click on %s\n", c.Side, c.Date.Field()); err != nil {
				return err
			}
		}
	}

	blocks, err := BuildBlocks(w, opts.Labels, Focus{})
	if err != nil {
		return err
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}
	start, end := w.Fields()
	output := Layout(blocks[:], width) + "\n\n" + FieldsLine(opts.Labels, start, end) + "\n\n" + ColorLegend()
	if _, err := fmt.Fprintln(opts.Writer, output); err != nil {
		return err
	}

	if !opts.HolidayCacheValid {
		_, err = fmt.Fprintln(opts.Writer, "\n"+HolidayWarning())
	}
	return err
}

// RunPlainWeekly renders the weekly grid once.
func RunPlainWeekly(out io.Writer, g *weekly.Grid, weekdays calendar.WeekdayNames) error {
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, WeeklyView(g, weekdays, WeeklyCursor{})+"\n"+WeeklySummary(g))
	return err
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
