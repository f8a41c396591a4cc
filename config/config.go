package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Google Places API
const PLACES_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api/place"
const TEXT_SEARCH_ENDPOINT = "/textsearch/json"
const NEARBY_SEARCH_ENDPOINT = "/nearbysearch/json"
const PLACES_HTTP_TIMEOUT_SECONDS = 10
const API_KEY_CONSOLE_URL = "https://console.cloud.google.com/google/maps-apis/credentials"

// Export file names
const SELECTED_PLACES_CSV = "selected_places.csv"
const ALL_PLACES_CSV = "all_places.csv"
const PLACES_MAP_HTML = "places_map.html"
const DEFAULT_EXPORT_FOLDER = "Desktop"

// Redis Config
const REDIS_DB_ADDRESS = "localhost:6379"

// HTTP surface
const SERVER_ADDRESS = ":8080"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const TEXT_SEARCH_RESPONSE_RESOURCE = "text_search_response.json"
const NEARBY_SEARCH_RESPONSE_RESOURCE = "nearby_search_response.json"

const ENV_PREFIX = "PLACES"

// Config holds all application configuration.
type Config struct {
	Places PlacesConfig `mapstructure:"places"`
	Export ExportConfig `mapstructure:"export"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type PlacesConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Mock           bool   `mapstructure:"mock"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional config.yaml and PLACES_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("places.base_url", PLACES_ENDPOINT_BASE)
	v.SetDefault("places.timeout_seconds", PLACES_HTTP_TIMEOUT_SECONDS)
	v.SetDefault("places.mock", false)
	v.SetDefault("export.dir", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", REDIS_DB_ADDRESS)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.addr", SERVER_ADDRESS)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// PLACES_EXPORT_DIR → export.dir
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Export.Dir == "" {
		dir, err := DefaultExportDir()
		if err != nil {
			return nil, err
		}
		cfg.Export.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Places.BaseURL == "" {
		errs = append(errs, "places.base_url is required")
	}
	if c.Places.TimeoutSeconds <= 0 {
		errs = append(errs, "places.timeout_seconds must be positive")
	}
	if c.Export.Dir == "" {
		errs = append(errs, "export.dir is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis.addr is required when redis is enabled")
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		errs = append(errs, "server.addr is required when the server is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// DefaultExportDir returns the Desktop folder inside the user's home directory.
func DefaultExportDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DEFAULT_EXPORT_FOLDER), nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}
	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
