package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/render/text"
)

type Service interface {
	Fetch(ctx context.Context) ([]recipes.Recipe, error)
}

// CatalogLoadedMsg and CatalogFailedMsg carry the mount generation that
// issued the fetch so the model can drop completions from an older mount.
type CatalogLoadedMsg struct {
	Generation int
	Recipes    []recipes.Recipe
	Duration   time.Duration
}

type CatalogFailedMsg struct {
	Generation int
	Err        error
	Duration   time.Duration
}

type StatusMsg struct {
	Status string
}

type ActionErrorMsg struct {
	Err error
}

func FetchCatalogCmd(service Service, generation int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		list, err := service.Fetch(context.Background())
		if err != nil {
			return CatalogFailedMsg{Generation: generation, Err: err, Duration: time.Since(start)}
		}
		return CatalogLoadedMsg{Generation: generation, Recipes: list, Duration: time.Since(start)}
	}
}

func IngredientsText(r recipes.Recipe) string {
	items := text.PlainAll(r.Ingredients)
	var b strings.Builder
	for _, item := range items {
		if item == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

func CopyIngredientsCmd(r recipes.Recipe, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		body := IngredientsText(r)
		if body == "" {
			return ActionErrorMsg{Err: fmt.Errorf("recipe has no ingredients")}
		}
		if copyFn == nil {
			return ActionErrorMsg{Err: fmt.Errorf("could not copy ingredients to clipboard")}
		}
		if err := copyFn(body); err != nil {
			return ActionErrorMsg{Err: fmt.Errorf("could not copy ingredients to clipboard: %w", err)}
		}
		return StatusMsg{Status: "Ingredients copied to clipboard"}
	}
}

func OpenImageCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return StatusMsg{Status: "Opened image in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return StatusMsg{Status: "Could not open browser, image URL copied to clipboard"}
			}
		}
		return ActionErrorMsg{Err: fmt.Errorf("could not open image URL or copy to clipboard")}
	}
}
