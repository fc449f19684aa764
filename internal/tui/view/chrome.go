package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

type Screen int

const (
	ScreenBanner Screen = iota
	ScreenShop
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenShop:
		return "shop"
	case ScreenDetail:
		return "detail"
	default:
		return "banner"
	}
}

func Header(screen Screen, th tuitheme.Theme) string {
	return th.Title.Render("Recipes") + " " + th.ModePill.Render(screen.String())
}

func Toolbar(screen Screen, searching bool) string {
	switch {
	case screen == ScreenBanner:
		return "enter browse | ? help | q quit"
	case screen == ScreenDetail:
		return "j/k scroll | [ ] prev/next | y copy ingredients | o open image | esc close | ? help"
	case searching:
		return "type to search | enter/esc done | ctrl+l clear"
	default:
		return "j/k move | enter open | tab/shift+tab category | / search | a all | esc back | ? help"
	}
}

type FooterInput struct {
	Category string
	Search   string
	Shown    int
	Total    int
	Loading  bool
}

func Footer(in FooterInput, th tuitheme.Theme) string {
	state := th.StateIdle.Render("ready")
	if in.Loading {
		state = th.StateLoad.Render("loading")
	}
	parts := []string{
		state,
		th.MetaLabel.Render("category") + " " + th.MetaValue.Render(in.Category),
		th.MetaValue.Render(fmt.Sprintf("%d of %d recipes", in.Shown, in.Total)),
	}
	if in.Search != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q", in.Search)))
	}
	return strings.Join(parts, " • ")
}

// StatusLine shows a transient action result; errors take priority.
func StatusLine(status, errText string, th tuitheme.Theme) string {
	if errText != "" {
		return th.StateLoad.Render("Error: " + errText)
	}
	if status != "" {
		return th.MetaValue.Render(status)
	}
	return ""
}
