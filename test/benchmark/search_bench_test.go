package benchmark

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/config"
	"github.com/hyperjump/kondate/internal/engine"
	"github.com/hyperjump/kondate/internal/filter"
	"github.com/hyperjump/kondate/internal/models"
	"github.com/hyperjump/kondate/internal/provider"
)

func BenchmarkAccumulatorApply(b *testing.B) {
	filters := filter.New()
	pages := make([]*engine.Outcome, 10)
	for p := 0; p < 10; p++ {
		results := make([]models.Recipe, 20)
		for i := range results {
			results[i] = models.Recipe{
				ID:    fmt.Sprintf("recipe-%d-%d", p+1, i),
				Title: fmt.Sprintf("Recipe %d on page %d", i, p+1),
			}
		}
		pages[p] = &engine.Outcome{
			Query:   "pasta",
			Filters: filters,
			Page:    p + 1,
			Mode:    classify.ModeKeyword,
			Results: results,
			Total:   200,
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc := engine.NewAccumulator()
		for _, o := range pages {
			acc.Apply(o)
		}
		_ = acc.Items()
	}
}

func BenchmarkEpochKey(b *testing.B) {
	filters := filter.New()
	filters.Set("cuisine", "italian")
	filters.Set("diet", "vegetarian")
	filters.Set("maxReadyTime", 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.EpochKey("pasta with fresh tomatoes", filters)
	}
}

func BenchmarkClassifierClassify(b *testing.B) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	c := classify.NewClassifier(&cfg.Classifier)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Classify("healthy dinner ideas for two under 30 minutes")
	}
}

func BenchmarkEngineSearch(b *testing.B) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	client := provider.NewMockClient()
	eng := engine.NewEngine(client, nil, classify.NewClassifier(&cfg.Classifier), &cfg.Search, zap.NewNop())
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eng.Search(ctx, "pasta", 1)
	}
}
