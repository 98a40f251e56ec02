// Package classify decides whether a query should be answered by the keyword
// recipe API or the natural-language AI search endpoint.
package classify

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/kondate/internal/config"
)

// Mode represents the search mode selected for a query.
type Mode int

const (
	// ModeKeyword routes the query to the paged keyword search API.
	ModeKeyword Mode = iota
	// ModeNatural routes the query to the AI search endpoint.
	ModeNatural
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeKeyword:
		return "keyword"
	case ModeNatural:
		return "natural_language"
	default:
		return "unknown"
	}
}

// Classifier applies a configurable heuristic: a query is natural language
// when it is longer than the length threshold or contains an indicator
// phrase as whole words. Very short queries are always keyword searches.
// Safe for concurrent use; tuning can be swapped at runtime via Update.
type Classifier struct {
	mu         sync.RWMutex
	threshold  int
	minLength  int
	indicators []string
}

// NewClassifier creates a classifier from cfg. Zero values fall back to the
// packaged defaults so a partially filled config still classifies sensibly.
func NewClassifier(cfg *config.ClassifierConfig) *Classifier {
	c := &Classifier{}
	c.Update(cfg)
	return c
}

// Update replaces the classifier tuning. Used by config hot-reload.
func (c *Classifier) Update(cfg *config.ClassifierConfig) {
	threshold := 15
	minLength := 3
	indicators := config.DefaultIndicators
	if cfg != nil {
		if cfg.LengthThreshold > 0 {
			threshold = cfg.LengthThreshold
		}
		if cfg.MinQueryLength > 0 {
			minLength = cfg.MinQueryLength
		}
		if cfg.Indicators != nil {
			indicators = cfg.Indicators
		}
	}
	normalized := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind != "" {
			normalized = append(normalized, ind)
		}
	}

	c.mu.Lock()
	c.threshold = threshold
	c.minLength = minLength
	c.indicators = normalized
	c.mu.Unlock()
}

// Classify returns the mode for query.
func (c *Classifier) Classify(query string) Mode {
	q := strings.TrimSpace(query)

	c.mu.RLock()
	threshold, minLength, indicators := c.threshold, c.minLength, c.indicators
	c.mu.RUnlock()

	length := utf8.RuneCountInString(q)
	if length < minLength {
		return ModeKeyword
	}
	if length > threshold {
		return ModeNatural
	}
	padded := normalizeWords(q)
	for _, ind := range indicators {
		if strings.Contains(padded, " "+ind+" ") {
			return ModeNatural
		}
	}
	return ModeKeyword
}

// normalizeWords lowercases q and reduces it to space-separated word tokens,
// padded with a leading and trailing space so indicator phrases can be
// matched on word boundaries with a plain substring check.
func normalizeWords(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 2)
	b.WriteByte(' ')
	lastSpace := true
	for _, r := range strings.ToLower(q) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	if !lastSpace {
		b.WriteByte(' ')
	}
	return b.String()
}
