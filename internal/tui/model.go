package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/render"
	"github.com/lululau/rangecal/internal/selection"
	"github.com/lululau/rangecal/internal/widget"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

type inputMode int

const (
	inputNone inputMode = iota
	inputYear
	inputMonth
)

// Options tune the interactive host.
type Options struct {
	Labels            render.Labels
	HolidayCacheValid bool
}

// Run starts the interactive Bubble Tea UI on w. The widget holds the
// chosen fields when Run returns.
func Run(ctx context.Context, w *widget.Widget, opts Options) error {
	m := newModel(w, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}

type model struct {
	w                 *widget.Widget
	labels            render.Labels
	focus             selection.Side
	cursors           [2]dates.Date
	width             int
	inputMode         inputMode
	input             textinput.Model
	statusMsg         string
	holidayCacheValid bool
}

func newModel(w *widget.Widget, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "number"
	ti.CharLimit = 16
	ti.Prompt = "> "
	labels := opts.Labels
	if labels == (render.Labels{}) {
		labels = render.DefaultLabels
	}
	m := model{
		w:                 w,
		labels:            labels,
		input:             ti,
		holidayCacheValid: opts.HolidayCacheValid,
	}
	sel := w.Selection()
	today := w.Today()
	m.cursors[selection.StartSide] = cursorIn(w.Month(selection.StartSide), sel.Start(), today)
	m.cursors[selection.EndSide] = cursorIn(w.Month(selection.EndSide), sel.End(), today)
	return m
}

// cursorIn returns the first candidate inside month, or the first of the
// month.
func cursorIn(month calendar.Month, candidates ...dates.Date) dates.Date {
	for _, d := range candidates {
		if month.Contains(d) {
			return d
		}
	}
	return month.First()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		if m.w.Inert() {
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.focus = 1 - m.focus
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "up", "k":
			m.moveCursor(-7)
		case "down", "j":
			m.moveCursor(7)
		case "enter", " ":
			m.pick()
		case "[":
			m.navigate(-1)
		case "]":
			m.navigate(1)
		case "{":
			m.navigate(-12)
		case "}":
			m.navigate(12)
		case ".":
			today := m.w.Today()
			m.w.Show(m.focus, calendar.MonthOf(today))
			m.cursors[m.focus] = today
		case "y":
			m.activateInput(inputYear, "YYYY or YYYY MM")
		case "m":
			m.activateInput(inputMonth, "1-12")
		case "r":
			m.w.Reset()
			m.statusMsg = "form reset to its initial values"
		}
	}
	return m, nil
}

// moveCursor shifts the focused cursor by days; the calendar follows it
// into neighbouring months. The cursor stops at the edge of the supported
// years.
func (m *model) moveCursor(days int) {
	next := m.cursors[m.focus].AddDays(days)
	if month := calendar.MonthOf(next); month != m.w.Month(m.focus) && !m.w.Show(m.focus, month) {
		return
	}
	m.cursors[m.focus] = next
}

// navigate moves the focused calendar and keeps the cursor on the same day
// number, clamped to the month length.
func (m *model) navigate(delta int) {
	m.w.Navigate(m.focus, delta)
	m.clampCursor()
}

func (m *model) clampCursor() {
	month := m.w.Month(m.focus)
	m.cursors[m.focus] = month.Day(min(m.cursors[m.focus].Day, month.DaysInMonth()))
}

func (m *model) pick() {
	d := m.cursors[m.focus]
	if !m.w.Click(m.focus, d) {
		m.statusMsg = d.Field() + " is not available"
	}
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}
	if m.w.Inert() {
		return "range calendar is inactive, its input fields are missing\n\n" + render.HelpLine()
	}

	body, err := m.renderCalendars()
	status := m.statusMsg
	if err != nil {
		status = err.Error()
	}

	start, end := m.w.Fields()
	sb := strings.Builder{}
	sb.WriteString(body)
	sb.WriteString("\n\n")
	sb.WriteString(render.FieldsLine(m.labels, start, end))
	sb.WriteString("\n\n")
	sb.WriteString(render.HelpLine())
	sb.WriteString("\n")
	sb.WriteString(render.ColorLegend())
	if status != "" {
		sb.WriteString("\n")
		if noColorMode {
			sb.WriteString(status)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Render(status))
		}
	}
	if !m.holidayCacheValid {
		sb.WriteString("\n\n")
		sb.WriteString(render.HolidayWarning())
	}
	return sb.String()
}

func (m model) renderCalendars() (string, error) {
	blocks, err := render.BuildBlocks(m.w, m.labels, render.Focus{
		Side:   m.focus,
		Cursor: m.cursors[m.focus],
		Active: true,
	})
	if err != nil {
		return "", err
	}
	width := m.width
	if width <= 0 {
		width = 100
	}
	return render.Layout(blocks[:], width), nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput(mode inputMode, placeholder string) {
	m.inputMode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

// applyInput jumps the focused calendar to the typed year or month.
func (m *model) applyInput() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.statusMsg = "enter a number"
		return
	}
	target := m.w.Month(m.focus)
	switch m.inputMode {
	case inputYear:
		fields := strings.Fields(value)
		if len(fields) == 0 || len(fields) > 2 {
			m.statusMsg = "expected: year or year month"
			return
		}
		year, err := strconv.Atoi(fields[0])
		if err != nil || year < calendar.MinSupportedYear || year > calendar.MaxSupportedYear {
			m.statusMsg = calendar.ErrYearOutOfRange.Error()
			return
		}
		target.Year = year
		if len(fields) == 2 {
			month, err := strconv.Atoi(fields[1])
			if err != nil || month < 1 || month > 12 {
				m.statusMsg = "month must be between 1 and 12"
				return
			}
			target.Month = month - 1
		}
	case inputMonth:
		num, err := strconv.Atoi(value)
		if err != nil || num < 1 || num > 12 {
			m.statusMsg = "month must be between 1 and 12"
			return
		}
		target.Month = num - 1
	}
	m.w.Show(m.focus, target)
	m.clampCursor()
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
}

func (m model) inputView() string {
	side := m.labels[m.focus]
	var label string
	switch m.inputMode {
	case inputYear:
		label = side + ": year (enter to confirm / esc to cancel)"
	case inputMonth:
		label = side + ": month 1-12 (enter to confirm / esc to cancel)"
	default:
		return ""
	}
	if noColorMode {
		return label + "\n\n" + m.input.View()
	}
	return lipgloss.NewStyle().
		Bold(true).
		Render(label) + "\n\n" + m.input.View()
}
