package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/selection"
	"github.com/lululau/rangecal/internal/textwidth"
	"github.com/lululau/rangecal/internal/widget"
)

// cellWidth fits the cursor mark, a two digit day and the selection mark.
const cellWidth = 4

// blockGap separates the two calendars when they sit side by side.
const blockGap = 4

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	focusStyle  = labelStyle.Bold(true).Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))

	holidayColor = lipgloss.Color("#3B82F6")
	weekendColor = lipgloss.Color("#F97316")
	todayColor   = lipgloss.Color("#34D399")
	dimColor     = lipgloss.Color("#6B7280")
	edgeFg       = lipgloss.Color("#F8FAFC")
	edgeBg       = lipgloss.Color("#2563EB")
	rangeBg      = lipgloss.Color("#1E3A5F")
)

// Labels name the start and end calendars.
type Labels [2]string

// DefaultLabels are the field captions of the original admin form.
var DefaultLabels = Labels{"Data początkowa", "Data końcowa"}

// Focus is the keyboard cursor of the interactive host.
type Focus struct {
	Side   selection.Side
	Cursor dates.Date
	Active bool
}

// Block packages rendered lines with their visual width/height.
type Block struct {
	Lines  []string
	Width  int
	Height int
}

// BuildBlocks renders both calendars of w.
func BuildBlocks(w *widget.Widget, labels Labels, focus Focus) ([2]Block, error) {
	var blocks [2]Block
	views, err := w.Views()
	if err != nil {
		return blocks, err
	}
	weekdays := w.Names().Weekdays
	for _, side := range []selection.Side{selection.StartSide, selection.EndSide} {
		var cursor dates.Date
		focused := focus.Active && focus.Side == side
		if focused {
			cursor = focus.Cursor
		}
		blocks[side] = MonthBlock(views[side], weekdays, labels[side], cursor, focused)
	}
	return blocks, nil
}

// rowInfo maps a table row back to the days it shows. Secondary rows carry
// lunar labels under the day numbers of the row above.
type rowInfo struct {
	days      [7]calendar.Day
	secondary bool
}

// MonthBlock renders one month as a bordered grid under its label and title.
// A non-zero cursor marks that day.
func MonthBlock(view calendar.MonthView, weekdays calendar.WeekdayNames, label string, cursor dates.Date, focused bool) Block {
	lunar := hasSecondary(view)

	var infos []rowInfo
	var rows [][]string
	for _, week := range view.Weeks() {
		var info rowInfo
		for i := range info.days {
			info.days[i] = calendar.Day{Empty: true}
		}
		copy(info.days[:], week)

		row := make([]string, len(info.days))
		for i, day := range info.days {
			row[i] = dayText(day, isCursor(day, cursor))
		}
		rows = append(rows, row)
		infos = append(infos, info)

		if lunar {
			row := make([]string, len(info.days))
			for i, day := range info.days {
				row[i] = secondaryText(day)
			}
			rows = append(rows, row)
			infos = append(infos, rowInfo{days: info.days, secondary: true})
		}
	}

	headers := make([]string, len(weekdays))
	copy(headers, weekdays[:])

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
			if row == table.HeaderRow {
				if noColorMode {
					return base
				}
				return headerStyle.Width(cellWidth).Align(lipgloss.Center)
			}
			if row < 0 || row >= len(infos) || col < 0 || col >= len(weekdays) {
				return base
			}
			info := infos[row]
			day := info.days[col]
			return dayStyle(base, day, !info.secondary && isCursor(day, cursor))
		})
	if !noColorMode {
		t = t.BorderStyle(borderStyle)
	}
	grid := strings.Split(strings.TrimRight(t.Render(), "\n"), "\n")

	width := 0
	for _, line := range grid {
		width = max(width, textwidth.StringWidth(line))
	}

	head := []string{
		styled(labelLine(label, focused), labelOrFocus(focused)),
		styled(textwidth.Center(view.Title, width), titleStyle),
	}
	lines := append(head, grid...)
	for _, line := range head {
		width = max(width, textwidth.StringWidth(line))
	}
	return Block{
		Lines:  lines,
		Width:  width,
		Height: len(lines),
	}
}

func labelLine(label string, focused bool) string {
	if focused {
		return "▸ " + label
	}
	return "  " + label
}

func labelOrFocus(focused bool) lipgloss.Style {
	if focused {
		return focusStyle
	}
	return labelStyle
}

func isCursor(day calendar.Day, cursor dates.Date) bool {
	return !day.Empty && !cursor.IsZero() && day.Date == cursor
}

func hasSecondary(view calendar.MonthView) bool {
	for _, day := range view.Cells {
		if day.Secondary != "" {
			return true
		}
	}
	return false
}

// dayText is the cursor mark, the day number and one selection or state
// mark, so the grid reads the same without colors.
func dayText(day calendar.Day, cursor bool) string {
	if day.Empty {
		return ""
	}
	prefix := " "
	if cursor {
		prefix = ">"
	}
	return fmt.Sprintf("%s%2d%s", prefix, day.Date.Day, marker(day))
}

func marker(day calendar.Day) string {
	f := day.Selection
	switch {
	case f.SingleDay:
		return "*"
	case f.Start:
		return "["
	case f.End:
		return "]"
	case f.InRange:
		return "-"
	case day.Holiday:
		return "!"
	case !day.Interactive():
		return "x"
	}
	return " "
}

func secondaryText(day calendar.Day) string {
	if day.Empty {
		return ""
	}
	return textwidth.Truncate(day.Secondary, cellWidth)
}

// dayStyle colors a cell. Selection backgrounds win over state colors, and
// among states holiday > disabled > today > weekend.
func dayStyle(base lipgloss.Style, day calendar.Day, cursor bool) lipgloss.Style {
	if noColorMode || day.Empty {
		return base
	}
	s := base
	switch {
	case day.Holiday:
		s = s.Foreground(holidayColor)
	case !day.Interactive():
		s = s.Foreground(dimColor)
	case day.IsToday:
		s = s.Foreground(todayColor)
	case day.Weekend:
		s = s.Foreground(weekendColor)
	}
	f := day.Selection
	switch {
	case f.SingleDay || f.Start || f.End:
		s = s.Bold(true).Foreground(edgeFg).Background(edgeBg)
	case f.InRange:
		s = s.Background(rangeBg)
	}
	if cursor {
		s = s.Reverse(true)
	}
	return s
}

func styled(s string, style lipgloss.Style) string {
	if noColorMode {
		return s
	}
	return style.Render(s)
}

// Layout places the blocks side by side when they fit in width columns and
// stacks them otherwise.
func Layout(blocks []Block, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	total := 0
	height := 0
	for i, block := range blocks {
		total += block.Width
		if i > 0 {
			total += blockGap
		}
		height = max(height, block.Height)
	}

	if width > 0 && total > width {
		lines := make([]string, 0, len(blocks)*(height+1))
		for idx, block := range blocks {
			lines = append(lines, block.Lines...)
			if idx != len(blocks)-1 {
				lines = append(lines, "")
			}
		}
		return strings.Join(lines, "\n")
	}

	gap := strings.Repeat(" ", blockGap)
	lines := make([]string, height)
	for row := range lines {
		var sb strings.Builder
		for idx, block := range blocks {
			if idx > 0 {
				sb.WriteString(gap)
			}
			var line string
			if row < len(block.Lines) {
				line = block.Lines[row]
			}
			if idx == len(blocks)-1 {
				sb.WriteString(line)
			} else {
				sb.WriteString(textwidth.PadRight(line, block.Width))
			}
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// FieldsLine shows the two field values under their labels.
func FieldsLine(labels Labels, start, end string) string {
	if start == "" {
		start = "—"
	}
	if end == "" {
		end = "—"
	}
	return fmt.Sprintf("%s: %s    %s: %s", labels[0], start, labels[1], end)
}

// HelpLine describes the interactive key bindings.
func HelpLine() string {
	helpText := "tab switch calendar  arrows/hjkl move  enter pick  [ ] month  { } year  . today  y year  m month  r reset form  q done"
	return styled(helpText, helpStyle)
}

// ColorLegend explains the day marks.
func ColorLegend() string {
	legend := "[ start  ] end  * single day  - in range  ! holiday  x unavailable"
	return styled(legend, dimStyle)
}

// HolidayWarning asks for a holiday refresh.
func HolidayWarning() string {
	msg := "Holiday data is missing or older than 6 months, run  rangecal -u  to refresh it"
	return styled(msg, dimStyle)
}
