package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Banner
	Browse key.Binding

	// Card list
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	AllRecipes   key.Binding
	Search       key.Binding
	ClearSearch  key.Binding
	SearchDone   key.Binding
	Open         key.Binding
	Back         key.Binding

	// Detail overlay
	Close           key.Binding
	PrevRecipe      key.Binding
	NextRecipe      key.Binding
	CopyIngredients key.Binding
	OpenImage       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),

		Browse: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "browse recipes")),

		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		NextCategory: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/l", "next category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/h", "previous category")),
		AllRecipes:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all categories")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search by name")),
		ClearSearch:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear search")),
		SearchDone:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "finish search")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open recipe")),
		Back:         key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back to banner")),

		Close:           key.NewBinding(key.WithKeys("esc", "backspace", "enter"), key.WithHelp("esc", "close recipe")),
		PrevRecipe:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous recipe")),
		NextRecipe:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next recipe")),
		CopyIngredients: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy ingredients")),
		OpenImage:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open image")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.NextCategory, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.NextCategory, k.PrevCategory, k.AllRecipes, k.Search, k.ClearSearch},
		{k.Open, k.Close, k.PrevRecipe, k.NextRecipe, k.CopyIngredients, k.OpenImage},
		{k.Browse, k.Back, k.Help, k.Quit},
	}
}
