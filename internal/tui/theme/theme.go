package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Headline    lipgloss.Style
	Tagline     lipgloss.Style
	Blurb       lipgloss.Style
	BannerBox   lipgloss.Style
	Chip        lipgloss.Style
	ChipActive  lipgloss.Style
	CardTitle   lipgloss.Style
	CardMeta    lipgloss.Style
	ActiveLine  lipgloss.Style
	Placeholder lipgloss.Style
	OverlayBox  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateLoad   lipgloss.Style
	Spinner     lipgloss.Style
}

type palette struct {
	accent, accent2, highlight, green, peach, teal, text, subtext0, subtext1, overlay1, surface0 lipgloss.Color
}

func Default() Theme {
	return build("mocha", palette{
		accent:    lipgloss.Color("#cba6f7"),
		accent2:   lipgloss.Color("#b4befe"),
		highlight: lipgloss.Color("#f9e2af"),
		green:     lipgloss.Color("#a6e3a1"),
		peach:     lipgloss.Color("#fab387"),
		teal:      lipgloss.Color("#94e2d5"),
		text:      lipgloss.Color("#cdd6f4"),
		subtext0:  lipgloss.Color("#a6adc8"),
		subtext1:  lipgloss.Color("#bac2de"),
		overlay1:  lipgloss.Color("#7f849c"),
		surface0:  lipgloss.Color("#313244"),
	})
}

func Latte() Theme {
	return build("latte", palette{
		accent:    lipgloss.Color("#8839ef"),
		accent2:   lipgloss.Color("#7287fd"),
		highlight: lipgloss.Color("#df8e1d"),
		green:     lipgloss.Color("#40a02b"),
		peach:     lipgloss.Color("#fe640b"),
		teal:      lipgloss.Color("#179299"),
		text:      lipgloss.Color("#4c4f69"),
		subtext0:  lipgloss.Color("#6c6f85"),
		subtext1:  lipgloss.Color("#5c5f77"),
		overlay1:  lipgloss.Color("#8c8fa1"),
		surface0:  lipgloss.Color("#ccd0da"),
	})
}

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "latte") {
		return Latte()
	}
	return Default()
}

func build(name string, p palette) Theme {
	return Theme{
		Name:        name,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		ModePill:    lipgloss.NewStyle().Foreground(p.teal).Background(p.surface0).Padding(0, 1),
		Headline:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Tagline:     lipgloss.NewStyle().Bold(true).Foreground(p.green),
		Blurb:       lipgloss.NewStyle().Foreground(p.subtext1),
		BannerBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent2).Padding(1, 4),
		Chip:        lipgloss.NewStyle().Foreground(p.subtext0).Padding(0, 1),
		ChipActive:  lipgloss.NewStyle().Bold(true).Foreground(p.surface0).Background(p.green).Padding(0, 1),
		CardTitle:   lipgloss.NewStyle().Bold(true).Foreground(p.text),
		CardMeta:    lipgloss.NewStyle().Foreground(p.subtext0),
		ActiveLine:  lipgloss.NewStyle().Background(p.surface0).Foreground(p.text),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(p.overlay1),
		OverlayBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.highlight).Padding(0, 2),
		MetaLabel:   lipgloss.NewStyle().Foreground(p.overlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(p.subtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(p.green),
		StateLoad:   lipgloss.NewStyle().Foreground(p.peach),
		Spinner:     lipgloss.NewStyle().Foreground(p.peach),
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}

func (t Theme) RenderChip(active bool, label string) string {
	if active {
		return t.ChipActive.Render(label)
	}
	return t.Chip.Render(label)
}
