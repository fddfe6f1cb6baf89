package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. REELSCOUT_SERVER_ADDR
const EnvPrefix = "REELSCOUT"

// Load loads the configuration from an optional file, a .env file and the
// environment, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	// .env is optional; a malformed one is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".reelscout"))
		}

		// Check /etc
		v.AddConfigPath("/etc/reelscout/")
	}

	// The config file is optional unless one was named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// OMDb defaults
	v.SetDefault("omdb.api_key", "")
	v.SetDefault("omdb.base_url", "https://www.omdbapi.com/")
	v.SetDefault("omdb.timeout", "30s")

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.favorites_concurrency", 4)
	v.SetDefault("server.shutdown_timeout", "10s")

	// Filter defaults
	v.SetDefault("filter.cache_size", 64)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps REELSCOUT_* variables onto keys. OMDB_API_KEY is honoured
// as well since that is the name OMDb documents.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("omdb.api_key", EnvPrefix+"_OMDB_API_KEY", "OMDB_API_KEY")
}

// validate checks if the configuration is valid.
// The API key is not checked: a missing key surfaces as an HTTP 401 from OMDb.
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.OMDb.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("omdb.base_url must be an absolute URL: %q", cfg.OMDb.BaseURL)
	}

	if cfg.OMDb.Timeout < 0 {
		return fmt.Errorf("omdb.timeout must not be negative")
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if cfg.Server.FavoritesConcurrency < 1 {
		return fmt.Errorf("server.favorites_concurrency must be at least 1")
	}

	if cfg.Filter.CacheSize < 0 {
		return fmt.Errorf("filter.cache_size must not be negative")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Preset looks up a named filter expression. Names are case-insensitive
// since viper lowercases map keys.
func (c *Config) Preset(name string) (string, error) {
	if expression, ok := c.Filter.Presets[strings.ToLower(name)]; ok {
		return expression, nil
	}
	return "", fmt.Errorf("preset '%s' not found in config", name)
}
