package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Server  ServerConfig  `mapstructure:"server"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDbConfig holds OMDb API connection details
type OMDbConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig contains web UI settings
type ServerConfig struct {
	Addr                 string        `mapstructure:"addr"`
	FavoritesConcurrency int           `mapstructure:"favorites_concurrency"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
}

// FilterConfig contains result filter settings
type FilterConfig struct {
	CacheSize int               `mapstructure:"cache_size"`
	Presets   map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
