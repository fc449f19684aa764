package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/recipe-cli/internal/render/text"
	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

const (
	BannerHeadline = "Welcome to RECIPES..!"
	BannerTagline  = "Bringing adorable flavors to your table.!"
	BannerBlurb    = "At Recipes, we bring you a curated selection of dishes for your browsing pleasure. " +
		"Whether you're looking for inspiration or just exploring the world of home cooking, " +
		"browse recipes across every category and open any card to see what goes into it."
	bannerHint = "Press enter to browse recipes, q to quit"
)

// Banner renders the landing panel centered in a width x height area.
func Banner(width, height int, th tuitheme.Theme) string {
	inner := 64
	if width > 0 && width-8 < inner {
		inner = max(20, width-8)
	}

	lines := []string{th.Headline.Render(strings.ToUpper(BannerHeadline)), ""}
	lines = append(lines, th.Tagline.Render(BannerTagline), "")
	for _, line := range text.Wrap(BannerBlurb, inner) {
		lines = append(lines, th.Blurb.Render(line))
	}
	lines = append(lines, "", th.MetaLabel.Render(bannerHint))

	box := th.BannerBox.Render(strings.Join(lines, "\n"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
