package config

// DefaultIndicators are the natural-language indicator phrases used when the
// config does not provide its own list.
var DefaultIndicators = []string{
	"for", "with", "without", "healthy", "quick", "easy",
	"under", "less than", "minutes",
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SessionTTLMinutes == 0 {
		cfg.Server.SessionTTLMinutes = 30
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.spoonacular.com"
	}
	if cfg.Provider.SearchPath == "" {
		cfg.Provider.SearchPath = "/recipes/complexSearch"
	}
	if cfg.Provider.AISearchPath == "" {
		cfg.Provider.AISearchPath = "/recipes/aiSearch"
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 15
	}
	if cfg.Provider.RequestsPerSec == 0 {
		cfg.Provider.RequestsPerSec = 2
	}
	if cfg.Provider.Burst == 0 {
		cfg.Provider.Burst = 4
	}
	if cfg.Provider.CacheSize == 0 {
		cfg.Provider.CacheSize = 128
	}
	if cfg.Classifier.LengthThreshold == 0 {
		cfg.Classifier.LengthThreshold = 15
	}
	if cfg.Classifier.MinQueryLength == 0 {
		cfg.Classifier.MinQueryLength = 3
	}
	if cfg.Classifier.Indicators == nil {
		cfg.Classifier.Indicators = append([]string(nil), DefaultIndicators...)
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 12
	}
	if cfg.Search.PlaceholderQuery == "" {
		cfg.Search.PlaceholderQuery = "popular"
	}
	if cfg.Favorites.DatabasePath == "" {
		cfg.Favorites.DatabasePath = "/usr/local/var/kondate/data/db/favorites.db"
	}
	if cfg.Favorites.IndexPath == "" {
		cfg.Favorites.IndexPath = "/usr/local/var/kondate/data/indices/bleve"
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 500
	}
	// ConfigReload defaults to true when unset (nil).
}
