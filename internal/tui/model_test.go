package tui

import (
	"bytes"
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/recipe-cli/internal/catalog"
	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/tui/actions"
)

type fakeService struct {
	list  []recipes.Recipe
	err   error
	calls int
}

func (f *fakeService) Fetch(context.Context) ([]recipes.Recipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func sampleCatalog() []recipes.Recipe {
	return []recipes.Recipe{
		{
			ID:           1,
			Name:         "Classic Margherita Pizza",
			Image:        "https://cdn.example.com/1.webp",
			Cuisine:      "Italian",
			Tags:         []string{"Pizza", "Italian"},
			Ingredients:  []string{"Pizza dough", "Tomato sauce"},
			Instructions: []string{"Preheat the oven.", "Bake."},
		},
		{
			ID:           2,
			Name:         "Vegetarian Stir-Fry",
			Cuisine:      "Asian",
			Tags:         []string{"Vegetarian", "Stir-fry", "Asian"},
			Ingredients:  []string{"Tofu", "Broccoli"},
			Instructions: []string{"Stir-fry everything."},
		},
		{
			ID:           3,
			Name:         "Chocolate Chip Cookies",
			Cuisine:      "American",
			Tags:         []string{"Cookies", "Dessert"},
			Ingredients:  []string{"Flour", "Chocolate chips"},
			Instructions: []string{"Mix.", "Bake."},
		},
	}
}

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainView(m Model) string {
	return ansiStrip.ReplaceAllString(m.View(), "")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

// fetchMsgs runs a mount command and returns only the catalog messages, so
// spinner ticks never reach the model under test.
func fetchMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, fetchMsgs(t, c)...)
		}
		return out
	}
	switch msg.(type) {
	case actions.CatalogLoadedMsg, actions.CatalogFailedMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func mounted(t *testing.T, svc *fakeService, opts Options) Model {
	t.Helper()
	m := NewModel(svc, opts)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, fetchMsgs(t, cmd)...)
	return m
}

func visibleIDs(m Model) []int64 {
	var out []int64
	for _, r := range m.visible() {
		out = append(out, r.ID)
	}
	return out
}

func TestModel_StartsOnBannerWithoutFetching(t *testing.T) {
	svc := &fakeService{list: sampleCatalog()}
	m := NewModel(svc, Options{})

	if cmd := m.Init(); cmd != nil {
		t.Fatal("banner must not issue a fetch")
	}
	if svc.calls != 0 {
		t.Fatalf("expected no fetch, got %d", svc.calls)
	}
	if view := plainView(m); !strings.Contains(view, "WELCOME TO RECIPES..!") {
		t.Fatalf("expected banner headline, got: %s", view)
	}
}

func TestModel_EnterMountsShopAndFetchesOnce(t *testing.T) {
	svc := &fakeService{list: sampleCatalog()}
	m := NewModel(svc, Options{})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenShop || !m.loading {
		t.Fatalf("expected loading shop, got screen=%d loading=%v", m.screen, m.loading)
	}
	if view := plainView(m); !strings.Contains(view, "Loading recipes...") {
		t.Fatalf("expected loading indicator, got: %s", view)
	}

	m, _ = send(t, m, fetchMsgs(t, cmd)...)
	if svc.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", svc.calls)
	}
	if m.loading {
		t.Fatal("expected loading to finish")
	}
	if got := visibleIDs(m); len(got) != 3 {
		t.Fatalf("expected whole catalog visible, got %v", got)
	}

	view := plainView(m)
	for _, want := range []string{"Classic Margherita Pizza", "[Asian]", "#Cookies", "3 of 3 recipes"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got: %s", want, view)
		}
	}

	m, _ = send(t, m, keyRunes("a"), tea.KeyMsg{Type: tea.KeyTab}, keyRunes("j"))
	if svc.calls != 1 {
		t.Fatalf("filter changes must not refetch, got %d fetches", svc.calls)
	}
}

func TestModel_FetchFailureShowsPlaceholder(t *testing.T) {
	var logs bytes.Buffer
	svc := &fakeService{err: errors.New("dial tcp: connection refused")}
	m := mounted(t, svc, Options{Logger: log.New(&logs, "", 0)})

	if len(m.recipes) != 0 || len(m.visible()) != 0 {
		t.Fatalf("expected empty catalog after failure, got %d recipes", len(m.recipes))
	}
	if m.loading {
		t.Fatal("expected loading to stop after failure")
	}
	if view := plainView(m); !strings.Contains(view, "No recipes found.") {
		t.Fatalf("expected placeholder, got: %s", view)
	}
	if !strings.Contains(logs.String(), "catalog fetch failed") || !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("expected diagnostic log line, got %q", logs.String())
	}
	if m.err != nil {
		t.Fatalf("fetch failure must not surface as an error state, got %v", m.err)
	}
}

func TestModel_FailureAfterSuccessKeepsCatalog(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m, _ = send(t, m, actions.CatalogFailedMsg{Generation: m.generation, Err: errors.New("boom")})
	if len(m.recipes) != 3 {
		t.Fatalf("expected catalog unchanged, got %d recipes", len(m.recipes))
	}
}

func TestModel_DropsCompletionFromStaleMount(t *testing.T) {
	var logs bytes.Buffer
	svc := &fakeService{list: sampleCatalog()}
	m := NewModel(svc, Options{Logger: log.New(&logs, "", 0)})

	m, firstCmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := fetchMsgs(t, firstCmd)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenBanner {
		t.Fatal("expected esc to return to the banner")
	}
	m, _ = send(t, m, stale...)
	if len(m.recipes) != 0 {
		t.Fatalf("stale completion applied after unmount: %d recipes", len(m.recipes))
	}

	m, secondCmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, stale...)
	if len(m.recipes) != 0 || !m.loading {
		t.Fatalf("stale completion applied to new mount: recipes=%d loading=%v", len(m.recipes), m.loading)
	}
	if !strings.Contains(logs.String(), "discarding catalog from stale mount") {
		t.Fatalf("expected stale drop to be logged, got %q", logs.String())
	}

	m, _ = send(t, m, fetchMsgs(t, secondCmd)...)
	if len(m.recipes) != 3 || m.loading {
		t.Fatalf("expected current mount to load, got recipes=%d loading=%v", len(m.recipes), m.loading)
	}
}

func TestModel_UnmountDiscardsShopState(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.selection.Open() {
		t.Fatal("expected overlay open before unmount")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc})

	if m.screen != screenBanner {
		t.Fatalf("expected banner, got screen %d", m.screen)
	}
	if m.recipes != nil || m.selection != (catalog.Selection{}) || m.filter != catalog.DefaultFilter() {
		t.Fatalf("expected shop state discarded, got recipes=%v selection=%+v filter=%+v", m.recipes, m.selection, m.filter)
	}
}

func TestModel_SearchIsCaseInsensitive(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})

	m, _ = send(t, m, keyRunes("/"))
	if !m.searching {
		t.Fatal("expected / to focus search")
	}
	m, _ = send(t, m, keyRunes("PIZZA"))
	if got := visibleIDs(m); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only recipe 1, got %v", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.filter.Search != "PIZZA" {
		t.Fatalf("expected search kept after leaving input, got searching=%v search=%q", m.searching, m.filter.Search)
	}
	if m.screen != screenShop {
		t.Fatal("esc in search input must not leave the shop")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := visibleIDs(m); len(got) != 3 {
		t.Fatalf("expected cleared search to show all, got %v", got)
	}
}

func TestModel_SearchWithNoMatchesShowsPlaceholder(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m, _ = send(t, m, keyRunes("/"), keyRunes("xyz"))
	if view := plainView(m); !strings.Contains(view, "No recipes found.") {
		t.Fatalf("expected placeholder, got: %s", view)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.selection.Open() {
		t.Fatal("enter on an empty list must not open the overlay")
	}
}

func TestModel_CategoryCyclingIsExact(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.filter.Category != "Pizza" {
		t.Fatalf("expected first tag after All, got %q", m.filter.Category)
	}
	if got := visibleIDs(m); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only recipe 1, got %v", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.filter.Category != "Dessert" {
		t.Fatalf("expected wrap to last category, got %q", m.filter.Category)
	}
	m, _ = send(t, m, keyRunes("a"))
	if m.filter.Category != catalog.AllCategory {
		t.Fatalf("expected a to reset category, got %q", m.filter.Category)
	}
}

func TestModel_SelectAndDismiss(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.selection.Open() || m.selection.Recipe.ID != 1 {
		t.Fatalf("expected overlay on recipe 1, got %+v", m.selection)
	}
	view := plainView(m)
	for _, want := range []string{"Classic Margherita Pizza", "Ingredients:", "• Pizza dough", "1. Preheat the oven.", "[ Close ]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in overlay, got: %s", want, view)
		}
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.selection.Visible || m.selection.Recipe != nil {
		t.Fatalf("expected selection cleared in one update, got %+v", m.selection)
	}
	if m.screen != screenShop {
		t.Fatal("dismissing the overlay must stay in the shop")
	}
}

func TestModel_SelectWhileOpenRebinds(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("]"))
	if !m.selection.Open() || m.selection.Recipe.ID != 2 {
		t.Fatalf("expected overlay rebound to recipe 2, got %+v", m.selection)
	}
	m, _ = send(t, m, keyRunes("["))
	if m.selection.Recipe.ID != 1 {
		t.Fatalf("expected overlay rebound to recipe 1, got %d", m.selection.Recipe.ID)
	}
}

func TestModel_InitialFilterAppliesOnMount(t *testing.T) {
	svc := &fakeService{list: sampleCatalog()}
	m := NewModel(svc, Options{
		StartInShop:   true,
		InitialFilter: catalog.FilterState{Category: "Dessert", Search: "chip"},
	})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected fetch when starting in the shop")
	}
	m, _ = send(t, m, fetchMsgs(t, cmd)...)
	if got := visibleIDs(m); len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected only recipe 3, got %v", got)
	}
	if !strings.Contains(plainView(m), "category Dessert") {
		t.Fatalf("expected footer to show category, got: %s", plainView(m))
	}
}

func TestModel_CopyIngredients(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := send(t, m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = send(t, m, cmd())
	if copied != "- Pizza dough\n- Tomato sauce\n" {
		t.Fatalf("unexpected clipboard contents: %q", copied)
	}
	if m.status != "Ingredients copied to clipboard" {
		t.Fatalf("unexpected status: %q", m.status)
	}
}

func TestModel_OpenImageRejectsMissingURL(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m.openURLFn = func(string) error {
		t.Fatal("browser must not be opened without an image URL")
		return nil
	}
	m, _ = send(t, m, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("o"))
	if m.err == nil || !strings.Contains(m.err.Error(), "no image URL") {
		t.Fatalf("expected missing image error, got %v", m.err)
	}
	if !m.selection.Open() {
		t.Fatal("overlay should stay open after an action error")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := mounted(t, &fakeService{list: sampleCatalog()}, Options{})
	m, _ = send(t, m, keyRunes("?"))
	if !m.showHelp {
		t.Fatal("expected help visible")
	}
	if view := plainView(m); !strings.Contains(view, "next category") {
		t.Fatalf("expected key help, got: %s", view)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp || m.screen != screenShop {
		t.Fatalf("expected esc to close help only, got showHelp=%v screen=%d", m.showHelp, m.screen)
	}
}
