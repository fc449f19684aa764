package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

// CategoryChips lays the category universe out as chips, wrapping onto a new
// row when the next chip would overflow width.
func CategoryChips(categories []string, selected string, width int, th tuitheme.Theme) string {
	if len(categories) == 0 {
		return ""
	}
	rows := make([]string, 0, 2)
	row := ""
	for _, category := range categories {
		chip := th.RenderChip(category == selected, category)
		if row == "" {
			row = chip
			continue
		}
		if width > 0 && lipgloss.Width(row)+1+lipgloss.Width(chip) > width {
			rows = append(rows, row)
			row = chip
			continue
		}
		row += " " + chip
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
