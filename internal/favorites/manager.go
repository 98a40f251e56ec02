package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/models"
)

// Manager coordinates the favorites store and its full-text index so both
// stay in step. It satisfies Store and adds Search and Rebuild on top.
type Manager struct {
	store  Store
	index  Index
	logger *zap.Logger
}

// NewManager creates a manager. A nil logger disables logging.
func NewManager(store Store, index Index, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, index: index, logger: logger}
}

// Add saves a recipe and indexes it. Recipes without an ID get one assigned.
func (m *Manager) Add(ctx context.Context, recipe *models.Recipe) error {
	if recipe == nil || strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("favorite requires a title")
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if err := m.store.Add(ctx, recipe); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	if err := m.index.Index(recipe); err != nil {
		return fmt.Errorf("failed to index favorite: %w", err)
	}
	m.logger.Debug("favorite added", zap.String("id", recipe.ID), zap.String("title", recipe.Title))
	return nil
}

// Remove deletes a recipe from the store and the index.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if err := m.store.Remove(ctx, id); err != nil {
		return err
	}
	if err := m.index.Delete(id); err != nil {
		return fmt.Errorf("failed to deindex favorite: %w", err)
	}
	m.logger.Debug("favorite removed", zap.String("id", id))
	return nil
}

// Get returns a favorite by ID.
func (m *Manager) Get(ctx context.Context, id string) (*models.Recipe, error) {
	return m.store.Get(ctx, id)
}

// List returns all favorites, most recently added first.
func (m *Manager) List(ctx context.Context) ([]models.Recipe, error) {
	return m.store.List(ctx)
}

// Count returns the number of favorites.
func (m *Manager) Count(ctx context.Context) (int64, error) {
	return m.store.Count(ctx)
}

// IndexCount returns the number of documents in the search index. When it
// disagrees with Count the index has drifted and Rebuild will repair it.
func (m *Manager) IndexCount() uint64 {
	n, err := m.index.Count()
	if err != nil {
		return 0
	}
	return n
}

// Search finds saved recipes matching query via the local index.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}
	matches, err := m.index.Search(query, limit)
	if err != nil {
		return nil, err
	}
	recipes := make([]models.Recipe, 0, len(matches))
	for _, match := range matches {
		recipe, err := m.store.Get(ctx, match.ID)
		if errors.Is(err, ErrNotFound) {
			// Index and store drifted; Rebuild repairs this on next start.
			m.logger.Debug("indexed favorite missing from store", zap.String("id", match.ID))
			continue
		}
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Rebuild reindexes every stored favorite and returns how many were indexed.
// Run at startup to repair index drift.
func (m *Manager) Rebuild(ctx context.Context) (int, error) {
	recipes, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list favorites: %w", err)
	}
	for i := range recipes {
		if err := m.index.Index(&recipes[i]); err != nil {
			return i, fmt.Errorf("failed to index favorite %s: %w", recipes[i].ID, err)
		}
	}
	return len(recipes), nil
}

// Close closes the index and the store.
func (m *Manager) Close() error {
	indexErr := m.index.Close()
	storeErr := m.store.Close()
	if indexErr != nil {
		return indexErr
	}
	return storeErr
}
