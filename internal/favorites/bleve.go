package favorites

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/hyperjump/kondate/internal/models"
)

// Index is the full-text index over saved recipes.
type Index interface {
	Index(recipe *models.Recipe) error
	Delete(id string) error
	Search(query string, limit int) ([]Match, error)
	Count() (uint64, error)
	Close() error
}

// Match is a single index hit.
type Match struct {
	ID    string
	Score float64
}

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// opened and reused; remove the directory to force a rebuild after mapping
// changes.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so ingredient
	// words match exactly as typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	docMapping.AddFieldMappingsAt("cuisines", textFieldMapping)
	docMapping.AddFieldMappingsAt("diets", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	im.AddDocumentMapping("recipe", docMapping)
	im.DefaultType = "recipe"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes a recipe by its ID.
func (b *BleveIndex) Index(recipe *models.Recipe) error {
	return b.index.Index(recipe.ID, recipe)
}

// Delete removes a recipe from the index.
func (b *BleveIndex) Delete(id string) error {
	return b.index.Delete(id)
}

// Search runs a match query over the indexed fields and returns up to limit
// hits ordered by score.
func (b *BleveIndex) Search(query string, limit int) ([]Match, error) {
	q := bleve.NewMatchQuery(query)
	search := bleve.NewSearchRequest(q)
	search.Size = limit
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]Match, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = Match{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Count returns the number of indexed recipes.
func (b *BleveIndex) Count() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
