package tui

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/recipe-cli/internal/catalog"
	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/tui/actions"
	"github.com/glabrego/recipe-cli/internal/tui/platform"
	tuistate "github.com/glabrego/recipe-cli/internal/tui/state"
	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
	"github.com/glabrego/recipe-cli/internal/tui/view"
)

const (
	defaultWidth         = 80
	maxOverlayWidth      = 88
	shopChromeLines      = 9
	detailChromeLines    = 8
	defaultDetailHeight  = 18
	statusClearAfter     = 3 * time.Second
	errorStatusClearTime = 4 * time.Second
)

type screen int

const (
	screenBanner screen = iota
	screenShop
)

type clearStatusMsg struct {
	id int
}

type Options struct {
	Theme tuitheme.Theme
	// Logger receives fetch diagnostics. Nil discards them.
	Logger *log.Logger
	// InitialFilter is applied on every shop mount.
	InitialFilter catalog.FilterState
	// StartInShop skips the banner and mounts the shop immediately.
	StartInShop bool
}

type Model struct {
	service actions.Service
	logger  *log.Logger
	theme   tuitheme.Theme
	keys    keyMap
	help    help.Model
	search  textinput.Model
	spinner spinner.Model
	detail  viewport.Model

	screen        screen
	generation    int
	loading       bool
	recipes       []recipes.Recipe
	filter        catalog.FilterState
	initialFilter catalog.FilterState
	cursor        int
	selection     catalog.Selection
	searching     bool
	showHelp      bool

	width    int
	height   int
	status   string
	err      error
	statusID int

	openURLFn func(string) error
	copyFn    func(string) error
}

func NewModel(service actions.Service, opts Options) Model {
	th := opts.Theme
	if th.Name == "" {
		th = tuitheme.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	initial := opts.InitialFilter
	if initial.Category == "" {
		initial.Category = catalog.AllCategory
	}

	search := textinput.New()
	search.Placeholder = "Search recipes by name"
	search.Prompt = "Search: "
	search.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.Spinner

	m := Model{
		service:       service,
		logger:        logger,
		theme:         th,
		keys:          defaultKeyMap(),
		help:          help.New(),
		search:        search,
		spinner:       sp,
		detail:        viewport.New(0, 0),
		filter:        initial,
		initialFilter: initial,
		openURLFn:     platform.OpenURLInBrowser,
		copyFn:        platform.CopyToClipboard,
	}
	if opts.StartInShop {
		m.mount()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen != screenShop {
		return nil
	}
	return m.fetchCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, msg.Width-len(m.search.Prompt)-2)
		m.syncDetail(false)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actions.CatalogLoadedMsg:
		if msg.Generation != m.generation {
			m.logger.Printf("discarding catalog from stale mount %d (current %d)", msg.Generation, m.generation)
			return m, nil
		}
		m.loading = false
		m.recipes = msg.Recipes
		m.clampCursor()
		m.logger.Printf("catalog loaded: %d recipes in %dms", len(msg.Recipes), msg.Duration.Milliseconds())
		return m, nil
	case actions.CatalogFailedMsg:
		if msg.Generation != m.generation {
			m.logger.Printf("discarding fetch failure from stale mount %d (current %d): %v", msg.Generation, m.generation, msg.Err)
			return m, nil
		}
		m.loading = false
		m.logger.Printf("catalog fetch failed after %dms: %v", msg.Duration.Milliseconds(), msg.Err)
		return m, nil
	case actions.StatusMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, statusClearAfter)
	case actions.ActionErrorMsg:
		m.status = ""
		m.err = msg.Err
		m.statusID++
		return m, clearStatusCmd(m.statusID, errorStatusClearTime)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.err = nil
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch {
		case msg.String() == "esc":
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.screen == screenBanner {
		switch {
		case key.Matches(msg, m.keys.Browse):
			m.mount()
			return m, m.fetchCmd()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}
	if m.selection.Open() {
		return m.updateDetail(msg)
	}
	return m.updateShop(msg)
}

func (m Model) updateShop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.unmount()
	case key.Matches(msg, m.keys.Up):
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Down):
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = tuistate.ClampCursor(len(visible)-1, len(visible))
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = tuistate.ClampCursor(m.cursor-m.cardsPerPage(), len(visible))
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = tuistate.ClampCursor(m.cursor+m.cardsPerPage(), len(visible))
	case key.Matches(msg, m.keys.NextCategory):
		m.setFilter(m.filter.CycleCategory(m.categories(), 1))
	case key.Matches(msg, m.keys.PrevCategory):
		m.setFilter(m.filter.CycleCategory(m.categories(), -1))
	case key.Matches(msg, m.keys.AllRecipes):
		next := m.filter
		next.Category = catalog.AllCategory
		m.setFilter(next)
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.setSearch("")
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Open):
		if len(visible) == 0 {
			return m, nil
		}
		m.cursor = tuistate.ClampCursor(m.cursor, len(visible))
		m.selection = m.selection.Select(visible[m.cursor])
		m.syncDetail(true)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SearchDone):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.setSearch("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.selection = m.selection.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevRecipe):
		m.stepSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextRecipe):
		m.stepSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.CopyIngredients):
		return m, actions.CopyIngredientsCmd(*m.selection.Recipe, m.copyFn)
	case key.Matches(msg, m.keys.OpenImage):
		url, err := platform.ValidateImageURL(m.selection.Recipe.Image)
		if err != nil {
			m.status = ""
			m.err = err
			m.statusID++
			return m, clearStatusCmd(m.statusID, errorStatusClearTime)
		}
		return m, actions.OpenImageCmd(url, m.openURLFn, m.copyFn)
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// mount enters the shop with a fresh catalog. Every mount gets its own
// generation so completions from an earlier mount are dropped.
func (m *Model) mount() {
	m.generation++
	m.screen = screenShop
	m.recipes = nil
	m.cursor = 0
	m.selection = m.selection.Dismiss()
	m.resetFilter()
	m.loading = m.service != nil
	m.logger.Printf("shop mounted (generation %d)", m.generation)
}

func (m *Model) unmount() {
	m.generation++
	m.screen = screenBanner
	m.recipes = nil
	m.cursor = 0
	m.selection = m.selection.Dismiss()
	m.resetFilter()
	m.loading = false
	m.logger.Printf("shop unmounted")
}

func (m *Model) resetFilter() {
	m.filter = m.initialFilter
	m.search.SetValue(m.initialFilter.Search)
	m.search.Blur()
	m.searching = false
}

func (m Model) fetchCmd() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(actions.FetchCatalogCmd(m.service, m.generation), m.spinner.Tick)
}

func (m *Model) setFilter(next catalog.FilterState) {
	if next == m.filter {
		return
	}
	m.filter = next
	m.cursor = 0
}

func (m *Model) setSearch(q string) {
	next := m.filter
	next.Search = q
	m.setFilter(next)
}

// stepSelection rebinds the open overlay to the neighbouring visible card.
func (m *Model) stepSelection(delta int) {
	visible := m.visible()
	if len(visible) == 0 {
		return
	}
	next := tuistate.ClampCursor(m.cursor+delta, len(visible))
	if next == m.cursor && visible[next].ID == m.selection.Recipe.ID {
		return
	}
	m.cursor = next
	m.selection = m.selection.Select(visible[next])
	m.syncDetail(true)
}

func (m Model) visible() []recipes.Recipe {
	return catalog.Filter(m.recipes, m.filter)
}

func (m Model) categories() []string {
	return catalog.Categories(m.recipes)
}

func (m *Model) clampCursor() {
	m.cursor = tuistate.ClampCursor(m.cursor, len(m.visible()))
}

func (m *Model) syncDetail(reset bool) {
	if !m.selection.Open() {
		return
	}
	width := m.overlayWidth() - m.theme.OverlayBox.GetHorizontalPadding()
	m.detail.Width = width
	m.detail.Height = m.detailHeight()
	m.detail.SetContent(strings.Join(view.DetailLines(*m.selection.Recipe, width), "\n"))
	if reset {
		m.detail.GotoTop()
	}
}

func (m Model) overlayWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return min(maxOverlayWidth, max(24, m.width-4))
}

func (m Model) detailHeight() int {
	if m.height <= 0 {
		return defaultDetailHeight
	}
	return max(3, m.height-detailChromeLines)
}

func (m Model) cardsPerPage() int {
	return max(1, tuistate.PageStep(m.height, shopChromeLines)/view.CardHeight)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) displayScreen() view.Screen {
	switch {
	case m.screen == screenBanner:
		return view.ScreenBanner
	case m.selection.Open():
		return view.ScreenDetail
	default:
		return view.ScreenShop
	}
}

func (m Model) View() string {
	var b strings.Builder
	current := m.displayScreen()
	b.WriteString(view.Header(current, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Toolbar(current, m.searching))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		m.help.ShowAll = true
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	case m.screen == screenBanner:
		height := 0
		if m.height > 0 {
			height = max(1, m.height-4)
		}
		b.WriteString(view.Banner(m.width, height, m.theme))
		b.WriteString("\n")
		return b.String()
	case m.selection.Open():
		b.WriteString(view.Overlay(m.detail.View(), m.overlayWidth(), m.theme))
		b.WriteString("\n")
	default:
		b.WriteString(m.shopView())
	}

	b.WriteString("\n")
	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.screen == screenShop {
		b.WriteString(m.footer())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) shopView() string {
	var b strings.Builder
	b.WriteString(view.CategoryChips(m.categories(), m.filter.Category, m.contentWidth(), m.theme))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading recipes...\n")
		return b.String()
	}
	visible := m.visible()
	rows := len(visible)
	if m.height > 0 {
		rows = max(1, (m.height-shopChromeLines)/view.CardHeight)
	}
	start, end := tuistate.CenteredWindow(len(visible), m.cursor, rows)
	b.WriteString(view.RenderCardList(view.CardListInput{
		Recipes: visible,
		Start:   start,
		End:     end,
		Cursor:  m.cursor,
		Width:   m.contentWidth(),
	}, m.theme))
	return b.String()
}

func (m Model) statusLine() string {
	errText := ""
	if m.err != nil {
		errText = m.err.Error()
	}
	return view.StatusLine(m.status, errText, m.theme)
}

func (m Model) footer() string {
	return view.Footer(view.FooterInput{
		Category: m.filter.Category,
		Search:   m.filter.Search,
		Shown:    len(m.visible()),
		Total:    len(m.recipes),
		Loading:  m.loading,
	}, m.theme)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
