package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/selection"
	"github.com/lululau/rangecal/internal/weekly"
	"github.com/lululau/rangecal/internal/widget"
)

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next
	}
	return m
}

func repeat(msg tea.Msg, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func newTestModel(t *testing.T, start, end string) (model, *widget.TextField, *widget.TextField) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	startField, endField := widget.NewTextField(start), widget.NewTextField(end)
	w := widget.New(context.Background(), widget.Container{
		StartInput:   startField,
		EndInput:     endField,
		HolidaysJSON: `["2025-04-21"]`,
	}, widget.Config{
		Rules: calendar.Rules{DisablePastDates: true},
		Now:   func() time.Time { return time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC) },
	})
	return newModel(w, Options{HolidayCacheValid: true}), startField, endField
}

func TestKeyboardPicksRange(t *testing.T) {
	m, startField, endField := newTestModel(t, "", "")

	var tm tea.Model = m
	tm = press(t, tm, repeat(tea.KeyMsg{Type: tea.KeyRight}, 5)...)
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "15.04.2025", startField.Value())
	require.Equal(t, "", endField.Value())

	// End calendar starts on May 1st; go back to April and walk to the 12th.
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyTab}, key("["), key("j"))
	tm = press(t, tm, repeat(key("l"), 4)...)
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "12.04.2025", startField.Value())
	require.Equal(t, "12.04.2025", endField.Value())

	view := tm.View()
	require.True(t, strings.Contains(view, "Data końcowa: 12.04.2025"), view)
}

func TestDisabledDayShowsStatus(t *testing.T) {
	m, startField, _ := newTestModel(t, "", "")

	var tm tea.Model = m
	tm = press(t, tm, key("j"))
	tm = press(t, tm, repeat(key("l"), 4)...)
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "", startField.Value())
	require.Contains(t, tm.View(), "21.04.2025 is not available")
}

func TestCursorCarriesCalendarAcrossMonths(t *testing.T) {
	m, _, _ := newTestModel(t, "", "")

	tm := press(t, m, repeat(key("h"), 10)...)
	got := tm.(model)
	require.Equal(t, calendar.Month{Year: 2025, Month: 2}, got.w.Month(selection.StartSide))
	require.Equal(t, 31, got.cursors[selection.StartSide].Day)

	tm = press(t, tm, key("}"))
	got = tm.(model)
	require.Equal(t, calendar.Month{Year: 2026, Month: 2}, got.w.Month(selection.StartSide))
}

func TestCursorStopsAtLastSupportedDay(t *testing.T) {
	m, startField, _ := newTestModel(t, "31.12.9999", "")

	tm := press(t, m, key("l"), key("j"), key("}"), key("]"))
	got := tm.(model)
	require.Equal(t, calendar.Month{Year: 9999, Month: 11}, got.w.Month(selection.StartSide))
	require.Equal(t, "31.12.9999", got.cursors[selection.StartSide].Field())

	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "31.12.9999", startField.Value())
	require.NotContains(t, tm.View(), calendar.ErrYearOutOfRange.Error())
}

func TestYearInputJumpsFocusedCalendar(t *testing.T) {
	m, _, _ := newTestModel(t, "", "")

	tm := press(t, m, tea.KeyMsg{Type: tea.KeyTab}, key("y"), key("2026 2"), tea.KeyMsg{Type: tea.KeyEnter})
	got := tm.(model)
	require.Equal(t, inputNone, got.inputMode)
	require.Equal(t, calendar.Month{Year: 2026, Month: 1}, got.w.Month(selection.EndSide))
	require.Equal(t, calendar.Month{Year: 2025, Month: 3}, got.w.Month(selection.StartSide))

	tm = press(t, tm, key("m"), key("13"), tea.KeyMsg{Type: tea.KeyEnter})
	got = tm.(model)
	require.Equal(t, inputMonth, got.inputMode)
	require.Equal(t, "month must be between 1 and 12", got.statusMsg)
}

func TestResetRestoresFields(t *testing.T) {
	m, startField, endField := newTestModel(t, "14.04.2025", "16.04.2025")

	tm := press(t, m, repeat(key("l"), 4)...)
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "18.04.2025", startField.Value())
	require.Equal(t, "", endField.Value())

	press(t, tm, key("r"))
	require.Equal(t, "14.04.2025", startField.Value())
	require.Equal(t, "16.04.2025", endField.Value())
}

func TestInertWidgetView(t *testing.T) {
	w := widget.New(context.Background(), widget.Container{}, widget.Config{})
	m := newModel(w, Options{})
	require.Contains(t, m.View(), "inactive")
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
}

func TestWeeklyModelToggles(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	g, err := weekly.New(7, 9)
	require.NoError(t, err)

	var tm tea.Model = newWeeklyModel(g, calendar.PolishWeekdays)
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeySpace}, key("j"), key("j"), key("l"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, `{"monday":[7],"tuesday":[8]}`, g.Value())

	tm = press(t, tm, key("h"), key("h"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, g.Selected(6, 8))
	require.Contains(t, tm.View(), "3 h selected")

	press(t, tm, key("c"))
	require.Equal(t, 0, g.Hours())
}

func TestWeeklyModelReportsToggleError(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	g, err := weekly.New(7, 9)
	require.NoError(t, err)

	m := newWeeklyModel(g, calendar.PolishWeekdays)
	m.hour = 12
	tm := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 0, g.Hours())
	require.NotEmpty(t, tm.(weeklyModel).status)
	require.Contains(t, tm.View(), tm.(weeklyModel).status)

	tm = press(t, tm, key("k"))
	require.Empty(t, tm.(weeklyModel).status)
}
