package app

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/recipe-cli/internal/catalog"
	"github.com/glabrego/recipe-cli/internal/recipes"
)

type fakeClient struct {
	list     []recipes.Recipe
	err      error
	deadline bool
}

func (f *fakeClient) ListRecipes(ctx context.Context) ([]recipes.Recipe, error) {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeRepo struct {
	saved   []recipes.Recipe
	saveErr error
	closed  bool
}

func (f *fakeRepo) Init(context.Context) error { return nil }

func (f *fakeRepo) ReplaceRecipes(_ context.Context, list []recipes.Recipe) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append([]recipes.Recipe(nil), list...)
	return nil
}

func (f *fakeRepo) Close() error {
	f.closed = true
	return nil
}

func stews() []recipes.Recipe {
	return []recipes.Recipe{
		{ID: 1, Name: "Veggie Stew", Tags: []string{"Vegetarian"}},
		{ID: 2, Name: "Beef Stew", Tags: []string{"Meat"}},
	}
}

func TestService_Fetch(t *testing.T) {
	client := &fakeClient{list: stews()}
	svc := NewService(client, 0)

	list, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("unexpected recipes: %+v", list)
	}
	if client.deadline {
		t.Fatal("expected no deadline when timeout is zero")
	}
}

func TestService_Fetch_AppliesTimeout(t *testing.T) {
	client := &fakeClient{list: stews()}
	if _, err := NewService(client, time.Second).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !client.deadline {
		t.Fatal("expected a deadline when timeout is set")
	}
}

func TestService_Fetch_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&fakeClient{err: boom}, 0).Fetch(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "fetch recipes from catalog") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestService_Visible(t *testing.T) {
	svc := NewService(&fakeClient{list: stews()}, 0)
	list, err := svc.Visible(context.Background(), catalog.FilterState{Category: "Vegetarian"})
	if err != nil {
		t.Fatalf("Visible returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("unexpected visible recipes: %+v", list)
	}
}

func TestService_Export_SQLiteUsesRepository(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(&fakeClient{list: stews()}, 0)
	svc.openRepo = func(string) (Repository, error) { return repo, nil }

	n, err := svc.Export(context.Background(), "out.db", catalog.FilterState{Category: catalog.AllCategory, Search: "beef"})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if n != 1 || len(repo.saved) != 1 || repo.saved[0].ID != 2 {
		t.Fatalf("unexpected snapshot: n=%d saved=%+v", n, repo.saved)
	}
	if !repo.closed {
		t.Fatal("expected repository to be closed")
	}
}

func TestService_Export_SQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.sqlite")
	svc := NewService(&fakeClient{list: stews()}, 0)

	if _, err := svc.Export(context.Background(), path, catalog.DefaultFilter()); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer db.Close()
	rows, err := db.Query(`SELECT name FROM recipes ORDER BY position`)
	if err != nil {
		t.Fatalf("query snapshot: %v", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan snapshot: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "Veggie Stew" {
		t.Fatalf("unexpected stored recipes: %v", names)
	}
}

func TestService_Export_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	svc := NewService(&fakeClient{list: stews()}, 0)

	n, err := svc.Export(context.Background(), path, catalog.FilterState{Category: "Meat"})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 exported recipe, got %d", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Beef Stew") || strings.Contains(string(data), "Veggie Stew") {
		t.Fatalf("unexpected csv content: %s", data)
	}
}

func TestService_Export_FetchFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	svc := NewService(&fakeClient{err: errors.New("offline")}, 0)

	if _, err := svc.Export(context.Background(), path, catalog.DefaultFilter()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no export file, stat err=%v", err)
	}
}

func TestService_Export_UnknownExtension(t *testing.T) {
	svc := NewService(&fakeClient{list: stews()}, 0)
	if _, err := svc.Export(context.Background(), "recipes.pdf", catalog.DefaultFilter()); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}
