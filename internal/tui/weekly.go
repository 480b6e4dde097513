package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/render"
	"github.com/lululau/rangecal/internal/weekly"
)

// RunWeekly starts the weekly-hours picker on g. The grid holds the chosen
// slots when RunWeekly returns.
func RunWeekly(ctx context.Context, g *weekly.Grid, weekdays calendar.WeekdayNames) error {
	prog := tea.NewProgram(newWeeklyModel(g, weekdays), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}

type weeklyModel struct {
	grid     *weekly.Grid
	weekdays calendar.WeekdayNames
	day      int
	hour     int
	status   string
}

func newWeeklyModel(g *weekly.Grid, weekdays calendar.WeekdayNames) weeklyModel {
	startHour, _ := g.Window()
	return weeklyModel{grid: g, weekdays: weekdays, hour: startHour}
}

func (m weeklyModel) Init() tea.Cmd {
	return nil
}

func (m weeklyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	startHour, endHour := m.grid.Window()
	m.status = ""
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.day = (m.day + len(m.weekdays) - 1) % len(m.weekdays)
	case "right", "l":
		m.day = (m.day + 1) % len(m.weekdays)
	case "up", "k":
		if m.hour > startHour {
			m.hour--
		}
	case "down", "j":
		if m.hour < endHour-1 {
			m.hour++
		}
	case "enter", " ":
		if err := m.grid.Toggle(m.day, m.hour); err != nil {
			m.status = err.Error()
		}
	case "c":
		m.grid.Clear()
	}
	return m, nil
}

func (m weeklyModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(render.WeeklyView(m.grid, m.weekdays, render.WeeklyCursor{Day: m.day, Hour: m.hour, Active: true}))
	sb.WriteString("\n")
	sb.WriteString(render.WeeklySummary(m.grid))
	sb.WriteString("\n\n")
	sb.WriteString(render.WeeklyHelpLine())
	if m.status != "" {
		sb.WriteString("\n")
		if noColorMode {
			sb.WriteString(m.status)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Render(m.status))
		}
	}
	return sb.String()
}
