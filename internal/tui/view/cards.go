package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/render/text"
	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

const EmptyPlaceholder = "No recipes found."

// CardHeight is the number of terminal rows one card occupies.
const CardHeight = 2

type CardParams struct {
	Recipe     recipes.Recipe
	VisiblePos int
	Active     bool
	Width      int
}

func RenderCard(p CardParams, th tuitheme.Theme) string {
	marker := " "
	if p.Active {
		marker = ">"
	}
	prefix := fmt.Sprintf("  %s%3d. ", marker, p.VisiblePos+1)

	label := text.Plain(p.Recipe.Name)
	if label == "" {
		label = "(unnamed)"
	}
	cuisine := CuisineLabel(p.Recipe)
	available := p.Width - lipgloss.Width(prefix) - 1 - lipgloss.Width(cuisine)
	if available < 1 {
		available = 1
	}
	label = text.Truncate(label, available)
	gap := p.Width - lipgloss.Width(prefix) - lipgloss.Width(label) - lipgloss.Width(cuisine)
	if gap < 1 {
		gap = 1
	}
	first := prefix + th.CardTitle.Render(label) + strings.Repeat(" ", gap) + th.CardMeta.Render(cuisine)

	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	tags := TagLine(p.Recipe.Tags)
	second := indent + th.CardMeta.Render(text.Truncate(tags, max(1, p.Width-len(indent))))

	return th.RenderActiveLine(p.Active, first) + "\n" + th.RenderActiveLine(p.Active, second)
}

func CuisineLabel(r recipes.Recipe) string {
	cuisine := text.Plain(r.Cuisine)
	if cuisine == "" {
		return "[unknown]"
	}
	return "[" + cuisine + "]"
}

func TagLine(tags []string) string {
	if len(tags) == 0 {
		return "no tags"
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

type CardListInput struct {
	Recipes []recipes.Recipe
	Start   int
	End     int
	Cursor  int
	Width   int
}

// RenderCardList draws cards [Start, End) of the visible set, or the empty
// placeholder when there is nothing to show.
func RenderCardList(in CardListInput, th tuitheme.Theme) string {
	if len(in.Recipes) == 0 {
		return th.Placeholder.Render(EmptyPlaceholder) + "\n"
	}
	start := max(0, in.Start)
	end := min(len(in.Recipes), in.End)
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(RenderCard(CardParams{
			Recipe:     in.Recipes[i],
			VisiblePos: i,
			Active:     i == in.Cursor,
			Width:      in.Width,
		}, th))
		b.WriteString("\n")
	}
	return b.String()
}
