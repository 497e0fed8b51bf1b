// ABOUTME: Root command, shared flags and dependency wiring
// ABOUTME: Every subcommand builds its client stack through newApp

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"marketplace-client-api/core/cache"
	"marketplace-client-api/core/catalog"
	"marketplace-client-api/core/favorites"
	"marketplace-client-api/core/interfaces"
	"marketplace-client-api/core/request"
	"marketplace-client-api/infrastructure/blobstore/memory"
	"marketplace-client-api/infrastructure/blobstore/redis"
	"marketplace-client-api/infrastructure/blobstore/sqlite"
	logruslogger "marketplace-client-api/infrastructure/logger/logrus"
	"marketplace-client-api/infrastructure/transport/standard"
	"marketplace-client-api/pkg/config"
)

var (
	flagConfigFile string
	flagBaseURL    string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Inspect a marketplace catalog service from the command line",
	Long: `marketctl talks to a marketplace catalog service using the same client
stack the IDE integration uses: classified transport errors, retrying
request execution, response memoization and favorites synchronization.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: environment only)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "catalog base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(marketsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(taggedCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// app is the wired client stack behind every subcommand
type app struct {
	cfg       *config.Config
	log       interfaces.Logger
	client    interfaces.CatalogClient
	favorites *favorites.Service
	close     func()
}

// newApp loads configuration and assembles transport, catalog service,
// cache wrapper and favorites synchronizer.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagBaseURL != "" {
		cfg.Catalog.BaseURL = flagBaseURL
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logruslogger.New(cfg.Log.Level)

	transport := standard.New(
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
		standard.WithRateLimit(cfg.Catalog.RatePerSecond, cfg.Catalog.RateBurst),
	)
	deps := interfaces.Dependencies{Transport: transport, Logger: log}

	meta := &request.ClientMeta{
		Client:          cfg.Client.Client,
		OS:              cfg.Client.OS,
		PlatformVersion: cfg.Client.PlatformVersion,
		ProductVersion:  cfg.Client.ProductVersion,
		Product:         cfg.Client.Product,
	}

	service := catalog.NewService(deps, cfg.Catalog.BaseURL, meta)

	policy := cache.NewDefaultReclaimPolicy(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second,
	)
	cached := cache.New(service, policy, log)

	catalog.DefaultRegistry.Register(service)
	catalog.DefaultRegistry.RegisterPreferred(cached)

	store, closeStore, err := newBlobStore(cfg)
	if err != nil {
		return nil, err
	}
	favService := favorites.NewService(store, log)
	service.SetFavoritesProvider(favService)

	return &app{
		cfg:       cfg,
		log:       log,
		client:    cached,
		favorites: favService,
		close: func() {
			cached.Close()
			closeStore()
		},
	}, nil
}

func newBlobStore(cfg *config.Config) (interfaces.BlobStore, func(), error) {
	switch cfg.Favorites.StoreType {
	case "redis":
		store, err := redis.NewStore(cfg.Favorites.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, func() { store.Close() }, nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.Favorites.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, func() { store.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}

// printJSON renders a result as indented JSON on stdout
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
