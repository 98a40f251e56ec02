// Package main is the Kondate CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/cli"
	"github.com/hyperjump/kondate/internal/config"
	"github.com/hyperjump/kondate/internal/engine"
	"github.com/hyperjump/kondate/internal/favorites"
	"github.com/hyperjump/kondate/internal/models"
	"github.com/hyperjump/kondate/internal/provider"
	"github.com/hyperjump/kondate/internal/server"
	"github.com/hyperjump/kondate/internal/watcher"
	"github.com/hyperjump/kondate/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kondate/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "kondate server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded (for watching, etc.).
// KONDATE_API_KEY overrides the provider key; a .env file in the working
// directory is loaded first so the key never has to live in config.yaml.
func loadConfig(path string) (*config.Config, string, error) {
	_ = godotenv.Load()
	resolved := path
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				resolved = fallback
			}
		}
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return nil, "", err
	}
	if key := os.Getenv("KONDATE_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	return cfg, resolved, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "favorites":
		runFavorites()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kondate version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (request details, classifier decisions, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	var watchSvc *watcher.Watcher
	if cfg.Watch.ConfigReloadOrDefault() {
		classifier := components.Classifier
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		if cfg.Watch.DebounceMS > 0 {
			watchOpts = append(watchOpts, watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond))
		}
		watchSvc = watcher.NewWatcher(resolvedConfigPath, func(newCfg *config.Config) {
			classifier.Update(&newCfg.Classifier)
			logger.Info("classifier configuration updated",
				zap.Int("length_threshold", newCfg.Classifier.LengthThreshold),
				zap.Int("min_query_length", newCfg.Classifier.MinQueryLength),
				zap.Int("indicators", len(newCfg.Classifier.Indicators)),
			)
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start config watcher", zap.Error(err))
		}
	}

	sessions := server.NewSessionRegistry(
		time.Duration(cfg.Server.SessionTTLMinutes)*time.Minute,
		func() *engine.Engine {
			return engine.NewEngine(components.Client, components.Favorites, components.Classifier, &cfg.Search, logger)
		},
		logger,
	)
	sessions.Start(watchCtx)

	srv := server.NewServer(sessions, components.Favorites, components.Client, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	sessions.Stop()
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage and query mode hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kondate search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Short ingredient queries use keyword search; longer descriptive queries are
routed to AI search automatically.
  • Use --filter key=value to constrain results (repeatable).
  • Setting a filter to "any", "all", or an empty value removes it.
  • Use --page to fetch a specific page of keyword results.

Examples:
  kondate search chicken curry
  kondate search "chicken curry"                       # same as above
  kondate search healthy dinner ideas for two people    # AI search
  kondate search --filter cuisine=italian pasta
  kondate search --filter diet=vegetarian --page 2 soup
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting (e.g. "chicken curry" vs chicken curry).
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "kondate search \"query\" -page 2"
// would otherwise leave -page unparsed (default 1 used).
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// filterFlags collects repeated --filter key=value arguments.
type filterFlags map[string]interface{}

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("filter must be key=value, got %q", value)
	}
	f[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	filters := filterFlags{}
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = query the provider directly when server is not running)")
	page := fs.Int("page", 1, "result page to fetch")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Var(filters, "filter", "search filter as key=value (repeatable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	case "compact":
		format = cli.OutputCompact
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{
		Query:   queryStr,
		Page:    *page,
		Filters: filters,
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (shares its session state and response cache).
		response, err := searchViaHTTP(*serverURL, searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct provider access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	eng := engine.NewEngine(components.Client, components.Favorites, components.Classifier, &cfg.Search, logger)
	if len(filters) > 0 {
		eng.ApplyFilters(filters)
	}
	response, err := eng.Search(context.Background(), searchQuery.Query, searchQuery.Page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runFavorites() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: kondate favorites <list|add|remove|search|rebuild> [flags] [args]")
		fmt.Println("  kondate favorites list                 List saved recipes")
		fmt.Println("  kondate favorites add --title <t>      Save a recipe")
		fmt.Println("  kondate favorites remove <id>          Remove a saved recipe")
		fmt.Println("  kondate favorites search <query>       Search saved recipes offline")
		fmt.Println("  kondate favorites rebuild              Rebuild the local search index")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	configPath := fs.String("config", defaultConfigPath, "config file path (for rebuild)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	id := fs.String("id", "", "recipe ID (for add; generated when empty)")
	title := fs.String("title", "", "recipe title (for add)")
	sourceURL := fs.String("url", "", "recipe source URL (for add)")
	limit := fs.Int("limit", 20, "max results (for search)")
	_ = fs.Parse(searchArgsReorder(os.Args[3:]))

	format := cli.OutputText
	if *outputFormat == "json" {
		format = cli.OutputJSON
	}

	switch sub {
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/favorites")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Favorites []models.Recipe `json:"favorites"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteFavorites(os.Stdout, out.Favorites, format)
	case "add":
		if strings.TrimSpace(*title) == "" {
			fmt.Println("Usage: kondate favorites add --title <title> [--id <id>] [--url <url>]")
			os.Exit(1)
		}
		recipe := models.Recipe{ID: *id, Title: *title, SourceURL: *sourceURL}
		body, _ := json.Marshal(recipe)
		resp, err := http.Post(*serverURL+"/api/v1/favorites", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			ID string `json:"id"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		fmt.Printf("Added: %s\n", out.ID)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kondate favorites remove <id>")
			os.Exit(1)
		}
		recipeID := fs.Arg(0)
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/favorites/"+url.PathEscape(recipeID), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", recipeID)
	case "search":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kondate favorites search <query>")
			os.Exit(1)
		}
		queryStr := buildSearchQuery(fs.Args())
		u := *serverURL + "/api/v1/favorites/search?q=" + url.QueryEscape(queryStr) + "&limit=" + fmt.Sprint(*limit)
		resp, err := http.Get(u)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Search failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Results []models.Recipe `json:"results"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteFavorites(os.Stdout, out.Results, format)
	case "rebuild":
		// Rebuild opens the store directly; stop the server first to avoid lock conflicts.
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()
		n, err := components.Favorites.Rebuild(context.Background())
		if err != nil {
			fmt.Printf("Rebuild failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reindexed %d favorite(s)\n", n)
	default:
		fmt.Printf("Unknown favorites subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	PageSize        int    `json:"page_size,omitempty"`
	LengthThreshold int    `json:"length_threshold,omitempty"`
	MinQueryLength  int    `json:"min_query_length,omitempty"`
	DatabasePath    string `json:"database_path,omitempty"`
	IndexPath       string `json:"index_path,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Favorites      int64                 `json:"favorites"`
	FavoritesIndex uint64                `json:"favorites_index"`
	Sessions       int                   `json:"sessions"`
	Provider       string                `json:"provider,omitempty"`
	UptimeSeconds  int64                 `json:"uptime_seconds,omitempty"`
	DiskUsageBytes *int64                `json:"disk_usage_bytes,omitempty"`
	Config         *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read local storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		favCount, err := components.Favorites.Count(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count favorites failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Favorites:      favCount,
			FavoritesIndex: components.Favorites.IndexCount(),
			Provider:       components.Client.Name(),
			Config: &statusConfigResponse{
				PageSize:        cfg.Search.PageSize,
				LengthThreshold: cfg.Classifier.LengthThreshold,
				MinQueryLength:  cfg.Classifier.MinQueryLength,
				DatabasePath:    cfg.Favorites.DatabasePath,
				IndexPath:       cfg.Favorites.IndexPath,
			},
		}
		diskBytes, err := favorites.DiskUsageBytes(cfg.Favorites.DatabasePath, cfg.Favorites.IndexPath)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("favorites:          %d   # count of saved recipes\n", status.Favorites)
		fmt.Printf("favorites_index:    %d   # count of indexed recipes\n", status.FavoritesIndex)
		fmt.Printf("sessions:           %d   # live search sessions\n", status.Sessions)
		if status.Provider != "" {
			fmt.Printf("provider:           %s\n", status.Provider)
		}
		if status.UptimeSeconds > 0 {
			fmt.Printf("uptime_seconds:     %d\n", status.UptimeSeconds)
		}
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d   # storage + index on disk\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("page_size:          %d\n", status.Config.PageSize)
			fmt.Printf("length_threshold:   %d\n", status.Config.LengthThreshold)
			fmt.Printf("min_query_length:   %d\n", status.Config.MinQueryLength)
			if status.Config.DatabasePath != "" {
				fmt.Printf("database_path:      %s\n", status.Config.DatabasePath)
			}
			if status.Config.IndexPath != "" {
				fmt.Printf("index_path:         %s\n", status.Config.IndexPath)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Favorites  *favorites.Manager
	Client     provider.Client
	Classifier *classify.Classifier
}

func (c *Components) Close() {
	if c.Favorites != nil {
		_ = c.Favorites.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := favorites.NewSQLiteStore(cfg.Favorites.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize favorites storage: %w", err)
	}
	index, err := favorites.NewBleveIndex(cfg.Favorites.IndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize favorites index: %w", err)
	}
	manager := favorites.NewManager(store, index, logger)
	client := provider.NewHTTPClient(&cfg.Provider, cfg.Search.PageSize, logger)
	classifier := classify.NewClassifier(&cfg.Classifier)
	return &Components{
		Favorites:  manager,
		Client:     client,
		Classifier: classifier,
	}, nil
}

func printUsage() {
	fmt.Println(`kondate - Recipe discovery with incremental search

Usage:
  kondate server [flags]               Start the HTTP server
  kondate search [flags] <query>       Search recipes
  kondate favorites <sub> [flags]      Manage saved recipes (list|add|remove|search|rebuild)
  kondate status [flags]               Show favorites/session/provider status
  kondate version                      Show version
  kondate help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kondate/config.yaml)
  --debug            Enable debug logging (request details, classifier decisions, etc.)

Search Flags:
  --config string    Config file path (for direct provider mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to query the provider directly.
  --page int         Result page to fetch (default: 1)
  --filter key=value Search filter (repeatable); "any", "all", or empty values remove a filter
  --output string    Output format: text, compact, or json (default: text)

Favorites Flags:
  --server string    Server URL (default: http://localhost:8080)
  --config string    Config file path (rebuild only)
  --id string        Recipe ID for add (generated when empty)
  --title string     Recipe title for add
  --url string       Recipe source URL for add
  --limit int        Max results for search (default: 20)
  --output string    Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to read local storage.
  --output string    Output format: text or json (default: text)

Examples:
  kondate server
  kondate search chicken curry
  kondate search "healthy dinner ideas for two people"   # routed to AI search
  kondate search --filter cuisine=italian --page 2 pasta
  kondate search --output json "miso soup"   # structured JSON for other apps
  kondate favorites add --title "Weeknight Pad Thai" --url https://example.com/pad-thai
  kondate favorites search noodles
  kondate status
  kondate status --output json`)
}
