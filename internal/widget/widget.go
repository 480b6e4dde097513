// Package widget implements the range calendar: two linked month calendars
// that pick a start and an end day and publish them into two text fields.
//
// A Widget is owned by a single host and is not safe for concurrent use.
// Every method runs to completion; there is no background work.
package widget

import (
	"context"
	"log/slog"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/google/uuid"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/holidays"
	"github.com/lululau/rangecal/internal/selection"
)

// Field is a host text input the widget reads its initial value from and
// writes the chosen day into.
type Field interface {
	Value() string
	SetValue(string)
}

// TextField is an in-memory Field.
type TextField struct {
	value string
}

// NewTextField returns a TextField holding v.
func NewTextField(v string) *TextField {
	return &TextField{value: v}
}

func (f *TextField) Value() string     { return f.value }
func (f *TextField) SetValue(v string) { f.value = v }

// Container is the host element a widget is attached to.
type Container struct {
	// ID names the widget instance; a random one is used when empty.
	ID         string
	StartInput Field
	EndInput   Field
	// HolidaysJSON is the host supplied holiday list. It is only read when
	// Config.Holidays is empty.
	HolidaysJSON string
}

// Config enumerates the behaviour of a widget. Field values always use the
// DD.MM.YYYY layout.
type Config struct {
	Rules    calendar.Rules
	Names    calendar.Names
	Lunar    bool
	Holidays holidays.Set
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// Widget is a range calendar bound to two fields.
type Widget struct {
	id      string
	logger  *slog.Logger
	svc     *calendar.Service
	start   Field
	end     Field
	inert   bool
	initial selection.Selection
	sel     selection.Selection
	months  [2]calendar.Month
}

// New attaches a widget to the container. A container without both fields
// yields an inert widget: the problem is logged and every operation is a
// no-op.
func New(ctx context.Context, c Container, cfg Config) *Widget {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	w := &Widget{
		id:     id,
		logger: ctxlog.Logger(ctx).With("widget", id),
		start:  c.StartInput,
		end:    c.EndInput,
	}
	if c.StartInput == nil || c.EndInput == nil {
		w.inert = true
		w.logger.Warn("range calendar is missing its input fields, leaving it inactive",
			"start", c.StartInput != nil, "end", c.EndInput != nil)
		return w
	}

	set := cfg.Holidays
	if set.Len() == 0 && c.HolidaysJSON != "" {
		set = holidays.Parse(ctx, []byte(c.HolidaysJSON))
	}
	if cfg.Names == (calendar.Names{}) {
		cfg.Names = calendar.NamesFor("pl")
	}
	opts := []calendar.Option{
		calendar.WithHolidays(set),
		calendar.WithRules(cfg.Rules),
		calendar.WithNames(cfg.Names),
		calendar.WithLunar(cfg.Lunar),
	}
	if cfg.Now != nil {
		opts = append(opts, calendar.WithNow(cfg.Now))
	}
	w.svc = calendar.NewService(opts...)

	sel, errs := selection.FromFields(c.StartInput.Value(), c.EndInput.Value())
	for _, err := range errs {
		w.logger.Debug("ignoring unparseable initial value", "error", err)
	}
	w.initial = sel
	w.sel = sel
	w.months = initialMonths(sel, w.svc.Today())
	return w
}

// initialMonths shows the start day's month (or today's) on the left and the
// end day's month on the right; without an end the right calendar shows the
// month after the left one, or the left month again in the last supported
// month.
func initialMonths(sel selection.Selection, today dates.Date) [2]calendar.Month {
	left := calendar.MonthOf(today)
	if !sel.Start().IsZero() {
		left = calendar.MonthOf(sel.Start())
	}
	right := left.Next()
	if !right.Supported() {
		right = left
	}
	if !sel.End().IsZero() {
		right = calendar.MonthOf(sel.End())
	}
	return [2]calendar.Month{left, right}
}

// ID returns the instance name.
func (w *Widget) ID() string { return w.id }

// Inert reports whether the widget failed to attach to its container.
func (w *Widget) Inert() bool { return w.inert }

// Selection returns the current selection.
func (w *Widget) Selection() selection.Selection { return w.sel }

// Names returns the label tables used for titles and headers.
func (w *Widget) Names() calendar.Names {
	if w.inert {
		return calendar.NamesFor("pl")
	}
	return w.svc.Names()
}

// Today returns the widget's notion of the current day.
func (w *Widget) Today() dates.Date {
	if w.inert {
		return dates.Today(time.Now)
	}
	return w.svc.Today()
}

// Month returns the month shown by one calendar.
func (w *Widget) Month(side selection.Side) calendar.Month {
	return w.months[side]
}

// Navigate moves one calendar by delta months. Moves past the supported
// years are ignored.
func (w *Widget) Navigate(side selection.Side, delta int) {
	w.Show(side, w.months[side].Add(delta))
}

// Show moves one calendar to the given month. It reports whether the month
// is supported and now shown.
func (w *Widget) Show(side selection.Side, m calendar.Month) bool {
	if w.inert {
		return false
	}
	m = m.Normalize()
	if !m.Supported() {
		w.logger.Debug("ignoring move outside the supported years", "side", side, "year", m.Year)
		return false
	}
	w.months[side] = m
	return true
}

// Click picks d in the given calendar. Days that are not visible in that
// calendar or not interactive are ignored. It reports whether the click was
// accepted.
func (w *Widget) Click(side selection.Side, d dates.Date) bool {
	if w.inert || !calendar.MonthOf(d).Supported() || !w.months[side].Contains(d) {
		return false
	}
	if day := w.svc.Classify(d); !day.Interactive() {
		w.logger.Debug("ignoring click on a disabled day", "side", side, "day", d)
		return false
	}
	w.sel.Click(side, d)
	w.publish()
	return true
}

// Reset restores the selection read at construction, as a host page reset
// does, and writes it back into the fields.
func (w *Widget) Reset() {
	if w.inert {
		return
	}
	w.sel = w.initial
	w.publish()
}

func (w *Widget) publish() {
	start, end := w.sel.Fields()
	w.start.SetValue(start)
	w.end.SetValue(end)
	w.logger.Debug("selection changed", "state", w.sel.State(), "start", start, "end", end)
}

// Fields returns the current field values.
func (w *Widget) Fields() (start, end string) {
	if w.inert {
		return "", ""
	}
	return w.start.Value(), w.end.Value()
}

// View renders one calendar with classification and selection flags.
func (w *Widget) View(side selection.Side) (calendar.MonthView, error) {
	if w.inert {
		return calendar.MonthView{}, nil
	}
	view, err := w.svc.Month(w.months[side])
	if err != nil {
		return calendar.MonthView{}, err
	}
	for i := range view.Cells {
		if !view.Cells[i].Empty {
			view.Cells[i].Selection = w.sel.Flags(view.Cells[i].Date)
		}
	}
	return view, nil
}

// Views renders both calendars.
func (w *Widget) Views() ([2]calendar.MonthView, error) {
	var views [2]calendar.MonthView
	for _, side := range []selection.Side{selection.StartSide, selection.EndSide} {
		view, err := w.View(side)
		if err != nil {
			return views, err
		}
		views[side] = view
	}
	return views, nil
}
