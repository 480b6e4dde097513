package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/weekly"
)

const (
	hourColWidth = 7
	slotColWidth = 4
)

// WeeklyCursor is the highlighted slot of the weekly grid.
type WeeklyCursor struct {
	Day    int
	Hour   int
	Active bool
}

// WeeklyView renders the grid as one row per hour and one column per day,
// Monday first. The table cursor follows the cursor hour.
func WeeklyView(g *weekly.Grid, weekdays calendar.WeekdayNames, cursor WeeklyCursor) string {
	columns := make([]table.Column, 0, len(weekdays)+1)
	columns = append(columns, table.Column{Title: "", Width: hourColWidth})
	for _, name := range weekdays {
		columns = append(columns, table.Column{Title: name, Width: slotColWidth})
	}

	startHour, endHour := g.Window()
	rows := make([]table.Row, 0, endHour-startHour)
	for hour := startHour; hour < endHour; hour++ {
		row := make(table.Row, 0, len(columns))
		row = append(row, fmt.Sprintf("%02d-%02d", hour, hour+1))
		for day := range weekdays {
			row = append(row, slotText(g.Selected(day, hour), cursor.Active && cursor.Day == day && cursor.Hour == hour))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	t.SetStyles(weeklyStyles(cursor.Active))
	if cursor.Active {
		t.SetCursor(cursor.Hour - startHour)
		t.Focus()
	} else {
		t.Blur()
	}

	view := strings.TrimRight(t.View(), "\n")
	if !noColorMode {
		view = tableWrapperStyle.Render(view)
	}
	return view
}

// WeeklySummary reports the number of chosen hours.
func WeeklySummary(g *weekly.Grid) string {
	return fmt.Sprintf("%d h selected", g.Hours())
}

// WeeklyHelpLine describes the weekly picker keys.
func WeeklyHelpLine() string {
	return styled("arrows/hjkl move  space/enter toggle  c clear  q done", helpStyle)
}

var tableWrapperStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#475569")).
	Padding(0, 1)

func slotText(selected, cursor bool) string {
	mark := "·"
	if selected {
		mark = "■"
	}
	if cursor {
		return "[" + mark + "]"
	}
	return " " + mark + " "
}

func weeklyStyles(active bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Cell = lipgloss.NewStyle()
	if noColorMode {
		styles.Header = lipgloss.NewStyle()
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = headerStyle
	styles.Selected = lipgloss.NewStyle()
	if active {
		styles.Selected = styles.Selected.Foreground(lipgloss.Color("#FEC260"))
	}
	return styles
}
