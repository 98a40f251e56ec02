package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kondate/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		image TEXT,
		ready_in_minutes INTEGER,
		servings INTEGER,
		source_url TEXT,
		summary TEXT,
		cuisines TEXT,
		diets TEXT,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_added_at ON favorites(added_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Add inserts or replaces a favorite. Saving an already saved recipe is a
// no-op apart from refreshing its stored fields.
func (s *SQLiteStore) Add(ctx context.Context, recipe *models.Recipe) error {
	cuisinesJSON, err := json.Marshal(recipe.Cuisines)
	if err != nil {
		return fmt.Errorf("failed to marshal cuisines: %w", err)
	}
	dietsJSON, err := json.Marshal(recipe.Diets)
	if err != nil {
		return fmt.Errorf("failed to marshal diets: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO favorites
		 (id, title, image, ready_in_minutes, servings, source_url, summary, cuisines, diets, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Title, recipe.Image, recipe.ReadyInMinutes, recipe.Servings,
		recipe.SourceURL, recipe.Summary, string(cuisinesJSON), string(dietsJSON), time.Now(),
	)
	return err
}

// Get returns a favorite by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, image, ready_in_minutes, servings, source_url, summary, cuisines, diets
		 FROM favorites WHERE id = ?`, id,
	)
	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return recipe, nil
}

// List returns all favorites, most recently added first.
func (s *SQLiteStore) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, image, ready_in_minutes, servings, source_url, summary, cuisines, diets
		 FROM favorites ORDER BY added_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, rows.Err()
}

// Remove deletes a favorite by ID.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of favorites.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var recipe models.Recipe
	var cuisinesJSON, dietsJSON string
	err := row.Scan(&recipe.ID, &recipe.Title, &recipe.Image, &recipe.ReadyInMinutes,
		&recipe.Servings, &recipe.SourceURL, &recipe.Summary, &cuisinesJSON, &dietsJSON)
	if err != nil {
		return nil, err
	}
	if cuisinesJSON != "" {
		_ = json.Unmarshal([]byte(cuisinesJSON), &recipe.Cuisines)
	}
	if dietsJSON != "" {
		_ = json.Unmarshal([]byte(dietsJSON), &recipe.Diets)
	}
	recipe.Favorited = true
	return &recipe, nil
}
