package cli

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Colors defines the color palette for terminal output.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color
	Group   lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
	Success: lipgloss.Color("#00B894"), // Green
	Group:   lipgloss.Color("#A29BFE"), // Lavender
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary)
	mutedStyle   = lipgloss.NewStyle().Foreground(Colors.Muted)
	successStyle = lipgloss.NewStyle().Foreground(Colors.Success)
	headerStyle  = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	groupStyle   = cellStyle.Bold(true).Foreground(Colors.Group)
)

// maxCellWidth bounds cell text in terminal tables.
const maxCellWidth = 60

// newTable returns a bordered table with the given headers.
// Rows listed in groupRows are rendered as group headings.
func newTable(headers []string, rows [][]string, groupRows map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case groupRows[row]:
				return groupStyle
			default:
				return cellStyle
			}
		})
}

// clip shortens each line of s to width runes.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if utf8.RuneCountInString(line) > width {
			lines[i] = string([]rune(line)[:width-1]) + "…"
		}
	}
	return strings.Join(lines, "\n")
}

func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
