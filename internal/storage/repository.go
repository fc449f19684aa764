package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/recipe-cli/internal/recipes"
)

// Repository writes recipe snapshots to a sqlite file. Each snapshot replaces
// the previous one wholesale.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS recipes (
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  image TEXT NOT NULL,
  cuisine TEXT NOT NULL,
  tags TEXT NOT NULL,
  ingredients TEXT NOT NULL,
  instructions TEXT NOT NULL,
  difficulty TEXT,
  servings INTEGER,
  prep_minutes INTEGER,
  cook_minutes INTEGER,
  rating REAL,
  exported_at TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceRecipes swaps the stored snapshot for list, keeping list order.
func (r *Repository) ReplaceRecipes(ctx context.Context, list []recipes.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("clear recipes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO recipes (id, position, name, image, cuisine, tags, ingredients, instructions, difficulty, servings, prep_minutes, cook_minutes, rating, exported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, recipe := range list {
		tags, err := encodeList(recipe.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for recipe %d: %w", recipe.ID, err)
		}
		ingredients, err := encodeList(recipe.Ingredients)
		if err != nil {
			return fmt.Errorf("encode ingredients for recipe %d: %w", recipe.ID, err)
		}
		instructions, err := encodeList(recipe.Instructions)
		if err != nil {
			return fmt.Errorf("encode instructions for recipe %d: %w", recipe.ID, err)
		}
		if _, err := stmt.ExecContext(
			ctx,
			recipe.ID,
			i,
			recipe.Name,
			recipe.Image,
			recipe.Cuisine,
			tags,
			ingredients,
			instructions,
			recipe.Difficulty,
			recipe.Servings,
			recipe.PrepTimeMinutes,
			recipe.CookTimeMinutes,
			recipe.Rating,
			now,
		); err != nil {
			return fmt.Errorf("save recipe %d: %w", recipe.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
