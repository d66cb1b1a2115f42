package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/brandforge/brandforge/internal/catalog"
	"github.com/brandforge/brandforge/internal/config"
	"github.com/brandforge/brandforge/internal/detect"
	"github.com/brandforge/brandforge/internal/profile"
	"github.com/brandforge/brandforge/internal/service"
	"github.com/brandforge/brandforge/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadCatalog builds the session catalog, trying the hosted endpoint
// first and snapshotting the result locally for offline listing.
func loadCatalog(ctx context.Context, store service.Storage) *catalog.Catalog {
	var source service.CatalogSource
	if remote := catalog.NewRemoteSource(catalog.RemoteConfig{
		URL:          viper.GetString("catalog.url"),
		TokenURL:     viper.GetString("catalog.token_url"),
		ClientID:     viper.GetString("catalog.client_id"),
		ClientSecret: viper.GetString("catalog.client_secret"),
		Timeout:      viper.GetDuration("catalog.timeout"),
	}); remote != nil {
		source = remote
	}

	cat := catalog.Load(ctx, source)

	if store != nil {
		if err := store.ReplaceCategories(ctx, cat.Records()); err != nil {
			slog.Warn("Failed to snapshot catalog", "error", err)
		}
	}

	return cat
}

// detectConfig assembles the LLM configuration from viper settings.
func detectConfig() detect.Config {
	return detect.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}
}

// initDetector builds the LLM detector, or returns nil when no API key
// is configured. Resolution degrades to manual selection without one.
func initDetector() *detect.Detector {
	cfg := detectConfig()
	if cfg.APIKey == "" {
		slog.Warn("No LLM API key configured; category detection disabled")
		return nil
	}

	detector, err := detect.NewDetector(cfg, slog.Default())
	if err != nil {
		slog.Warn("Failed to initialize detector; category detection disabled", "error", err)
		return nil
	}

	return detector
}

// initGenerator builds the profile generator over the same LLM client.
// Returns nil when no API key is configured.
func initGenerator(store service.Storage) *profile.Generator {
	cfg := detectConfig()
	if cfg.APIKey == "" {
		return nil
	}

	client, err := detect.NewClient(cfg)
	if err != nil {
		slog.Warn("Failed to initialize LLM client; profile generation disabled", "error", err)
		return nil
	}

	genCfg := profile.DefaultConfig()
	if timeout := viper.GetDuration("profile.timeout"); timeout > 0 {
		genCfg.Timeout = timeout
	}
	if estimate := viper.GetDuration("profile.estimated_duration"); estimate > 0 {
		genCfg.EstimatedDuration = estimate
	}

	backend := profile.NewLLMBackend(client, slog.Default())
	return profile.NewGenerator(backend, store, genCfg, slog.Default())
}

// formatDuration renders a duration for table output.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
