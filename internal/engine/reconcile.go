package engine

import "github.com/hyperjump/kondate/internal/models"

// Annotate returns a copy of items with Favorited set for every recipe whose
// ID appears in favorites. It is a pure function of its inputs: annotations
// are recomputed whenever results or favorites change and are never stored
// with the accumulated epoch.
func Annotate(items []models.Recipe, favorites []models.Recipe) []models.Recipe {
	ids := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		ids[f.ID] = struct{}{}
	}
	out := make([]models.Recipe, len(items))
	for i, item := range items {
		_, item.Favorited = ids[item.ID]
		out[i] = item
	}
	return out
}
