// ABOUTME: Configuration management via viper with environment variable support
// ABOUTME: Defines configuration structures for the catalog client, cache and favorites store

package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Catalog contains remote catalog connection settings
	Catalog CatalogConfig

	// Client identifies this installation to the catalog server
	Client ClientMetaConfig

	// Cache contains memoization settings
	Cache CacheConfig

	// Favorites contains favorites blob store settings
	Favorites FavoritesConfig

	// Log contains logging settings
	Log LogConfig
}

// CatalogConfig holds remote catalog connection settings
type CatalogConfig struct {
	// BaseURL is the catalog service base URL
	BaseURL string

	// TimeoutSeconds is the per-request HTTP timeout
	TimeoutSeconds int

	// RatePerSecond throttles outbound requests; zero disables the limiter
	RatePerSecond float64

	// RateBurst is the limiter burst size
	RateBurst int
}

// ClientMetaConfig holds the client-identification parameters appended to
// catalog request URLs
type ClientMetaConfig struct {
	Client          string
	OS              string
	PlatformVersion string
	ProductVersion  string
	Product         string
}

// CacheConfig holds memoization settings
type CacheConfig struct {
	// TTLSeconds is how long a cached entry stays reclaimable-free
	TTLSeconds int

	// CleanupIntervalSeconds is how often expired entries are reclaimed
	CleanupIntervalSeconds int
}

// FavoritesConfig holds favorites blob store settings
type FavoritesConfig struct {
	// StoreType specifies the blob store backend (memory/redis/sqlite)
	StoreType string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// LogConfig holds logging settings
type LogConfig struct {
	// Level is the minimum level emitted (debug/info/warn/error)
	Level string
}

// Load reads configuration from the environment and an optional config
// file. Environment variables use the MARKETPLACE_ prefix with underscores,
// e.g. MARKETPLACE_CATALOG_BASEURL.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog.baseurl", "https://marketplace.eclipse.org")
	v.SetDefault("catalog.timeoutseconds", 30)
	v.SetDefault("catalog.ratepersecond", 0.0)
	v.SetDefault("catalog.rateburst", 1)
	v.SetDefault("client.client", "marketplace-client-api")
	v.SetDefault("client.os", "")
	v.SetDefault("client.platformversion", "")
	v.SetDefault("client.productversion", "")
	v.SetDefault("client.product", "")
	v.SetDefault("cache.ttlseconds", 3600)
	v.SetDefault("cache.cleanupintervalseconds", 600)
	v.SetDefault("favorites.storetype", "memory")
	v.SetDefault("favorites.redis.address", "localhost:6379")
	v.SetDefault("favorites.redis.password", "")
	v.SetDefault("favorites.redis.db", 0)
	v.SetDefault("favorites.sqlitepath", "marketplace.db")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog base URL cannot be empty")
	}

	if c.Catalog.TimeoutSeconds < 1 {
		return errors.New("catalog timeout must be at least 1 second")
	}

	switch c.Favorites.StoreType {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("favorites store type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Favorites.StoreType == "redis" && c.Favorites.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using the redis store")
	}

	if c.Favorites.StoreType == "sqlite" && c.Favorites.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using the sqlite store")
	}

	return nil
}
