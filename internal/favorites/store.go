// Package favorites persists saved recipes and keeps a local full-text
// index over them so saved recipes can be searched offline.
package favorites

import (
	"context"
	"errors"

	"github.com/hyperjump/kondate/internal/models"
)

// ErrNotFound is returned when a favorite does not exist.
var ErrNotFound = errors.New("favorite not found")

// Store is the persistence interface for saved recipes. The engine only
// needs List; the manager and handlers use the rest.
type Store interface {
	Add(ctx context.Context, recipe *models.Recipe) error
	Get(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Close() error
}
