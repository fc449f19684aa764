package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/glabrego/recipe-cli/internal/catalog"
	"github.com/glabrego/recipe-cli/internal/export"
	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/storage"
)

type CatalogClient interface {
	ListRecipes(ctx context.Context) ([]recipes.Recipe, error)
}

type Repository interface {
	Init(ctx context.Context) error
	ReplaceRecipes(ctx context.Context, list []recipes.Recipe) error
	Close() error
}

type Service struct {
	client   CatalogClient
	timeout  time.Duration
	openRepo func(path string) (Repository, error)
}

// NewService wraps client. A zero timeout lets a fetch wait as long as the
// transport does.
func NewService(client CatalogClient, timeout time.Duration) *Service {
	return &Service{
		client:  client,
		timeout: timeout,
		openRepo: func(path string) (Repository, error) {
			return storage.NewRepository(path)
		},
	}
}

func (s *Service) Fetch(ctx context.Context) ([]recipes.Recipe, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	list, err := s.client.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes from catalog: %w", err)
	}
	return list, nil
}

// Visible fetches the catalog once and applies state to it.
func (s *Service) Visible(ctx context.Context, state catalog.FilterState) ([]recipes.Recipe, error) {
	list, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(list, state), nil
}

// Export writes the visible recipes to path. The extension picks the target:
// .db/.sqlite for a sqlite snapshot, .csv or .xlsx for a spreadsheet.
func (s *Service) Export(ctx context.Context, path string, state catalog.FilterState) (int, error) {
	visible, err := s.Visible(ctx, state)
	if err != nil {
		return 0, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		if err := s.saveSnapshot(ctx, path, visible); err != nil {
			return 0, err
		}
	default:
		format, err := export.FormatForPath(path)
		if err != nil {
			return 0, err
		}
		if err := export.WriteFile(path, format, visible); err != nil {
			return 0, fmt.Errorf("export recipes: %w", err)
		}
	}
	return len(visible), nil
}

func (s *Service) saveSnapshot(ctx context.Context, path string, list []recipes.Recipe) error {
	repo, err := s.openRepo(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer repo.Close()

	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("init snapshot schema: %w", err)
	}
	if err := repo.ReplaceRecipes(ctx, list); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
