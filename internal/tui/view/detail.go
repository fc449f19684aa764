package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/render/text"
	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

const CloseLabel = "[ Close ]"

func DetailLines(r recipes.Recipe, width int) []string {
	width = max(20, width)
	name := text.Plain(r.Name)
	lines := make([]string, 0, 16+len(r.Ingredients)+len(r.Instructions))
	lines = append(lines, text.Wrap(name, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(name))))))

	if meta := metaLines(r, width); len(meta) > 0 {
		lines = append(lines, "")
		lines = append(lines, meta...)
	}

	lines = append(lines, "", "Ingredients:")
	ingredients := text.PlainAll(r.Ingredients)
	if len(ingredients) == 0 {
		lines = append(lines, "  (none listed)")
	}
	for _, item := range ingredients {
		lines = append(lines, hangingWrap("  • ", item, width)...)
	}

	lines = append(lines, "", "Instructions:")
	steps := text.PlainAll(r.Instructions)
	if len(steps) == 0 {
		lines = append(lines, "  (none listed)")
	}
	for i, step := range steps {
		lines = append(lines, hangingWrap(fmt.Sprintf("%3d. ", i+1), step, width)...)
	}

	lines = append(lines, "", CloseLabel+"  esc")
	return lines
}

func metaLines(r recipes.Recipe, width int) []string {
	out := make([]string, 0, 6)
	if cuisine := text.Plain(r.Cuisine); cuisine != "" {
		out = append(out, "Cuisine: "+cuisine)
	}
	if difficulty := text.Plain(r.Difficulty); difficulty != "" {
		out = append(out, "Difficulty: "+difficulty)
	}
	if timing := TimingLabel(r); timing != "" {
		out = append(out, "Time: "+timing)
	}
	if r.Servings > 0 {
		out = append(out, "Servings: "+strconv.Itoa(r.Servings))
	}
	if r.Rating > 0 {
		out = append(out, "Rating: "+strconv.FormatFloat(r.Rating, 'f', 1, 64))
	}
	if len(r.Tags) > 0 {
		out = append(out, text.Wrap("Tags: "+strings.Join(r.Tags, ", "), width)...)
	}
	return out
}

func TimingLabel(r recipes.Recipe) string {
	parts := make([]string, 0, 2)
	if r.PrepTimeMinutes > 0 {
		parts = append(parts, fmt.Sprintf("prep %d min", r.PrepTimeMinutes))
	}
	if r.CookTimeMinutes > 0 {
		parts = append(parts, fmt.Sprintf("cook %d min", r.CookTimeMinutes))
	}
	return strings.Join(parts, ", ")
}

func hangingWrap(prefix, body string, width int) []string {
	indent := strings.Repeat(" ", len([]rune(prefix)))
	wrapped := text.Wrap(body, max(1, width-len(indent)))
	out := make([]string, len(wrapped))
	for i, line := range wrapped {
		if i == 0 {
			out[i] = strings.TrimRight(prefix+line, " ")
			continue
		}
		out[i] = indent + line
	}
	return out
}

// Overlay frames already-rendered detail content in the modal border.
func Overlay(body string, width int, th tuitheme.Theme) string {
	return th.OverlayBox.Width(width).Render(body)
}
