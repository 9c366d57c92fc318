// Package config provides configuration loading and parsing for the
// consulting engine.
package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound indicates the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidFormat indicates the config file could not be parsed.
	ErrInvalidFormat = errors.New("invalid config format")

	// ErrUnsupportedFormat indicates an unrecognized file extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrMissingEnvVar indicates a required environment variable is
	// not set.
	ErrMissingEnvVar = errors.New("missing environment variable")

	// ErrInvalidConfig indicates a semantically invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the full engine configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm" json:"llm"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Engine  EngineConfig  `yaml:"engine" json:"engine"`
	Data    DataConfig    `yaml:"data" json:"data"`
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // gemini, openai, ollama, mock
	Model       string  `yaml:"model" json:"model"`
	APIKey      string  `yaml:"api_key" json:"api_key"`
	BaseURL     string  `yaml:"base_url" json:"base_url"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Timeout     int     `yaml:"timeout" json:"timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// StorageConfig configures profile storage and the retrieval cache.
type StorageConfig struct {
	// ProfileDriver selects the profile store: memory or sqlite.
	ProfileDriver string `yaml:"profile_driver" json:"profile_driver"`
	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`

	// CacheDriver selects the cache: memory or redis.
	CacheDriver string `yaml:"cache_driver" json:"cache_driver"`
	// RedisAddr is the redis server for the redis driver.
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`
	// RedisPassword authenticates against redis when set.
	RedisPassword string `yaml:"redis_password" json:"redis_password"`
	// CacheTTLSeconds bounds the lifetime of cached search results.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
}

// EngineConfig bounds the orchestration loops.
type EngineConfig struct {
	// MaxPlanSteps caps how many steps one turn may execute.
	MaxPlanSteps int `yaml:"max_plan_steps" json:"max_plan_steps"`
	// MaxCardTurns caps the action card negotiation.
	MaxCardTurns int `yaml:"max_card_turns" json:"max_card_turns"`
	// HistoryWindow is how many recent messages capabilities see.
	HistoryWindow int `yaml:"history_window" json:"history_window"`
}

// DataConfig locates the bundled datasets.
type DataConfig struct {
	// ProfilesCSV is the merchant roster used for name resolution.
	ProfilesCSV string `yaml:"profiles_csv" json:"profiles_csv"`
	// ProfilesJSON seeds the profile store from a JSON document.
	ProfilesJSON string `yaml:"profiles_json" json:"profiles_json"`
	// KnowledgeDir holds the curated document collections, one JSON
	// file per category.
	KnowledgeDir string `yaml:"knowledge_dir" json:"knowledge_dir"`
	// SalesDir holds per-store sales records, one CSV per store.
	SalesDir string `yaml:"sales_dir" json:"sales_dir"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Temperature: 0.2,
			MaxTokens:   2048,
			Timeout:     120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			ProfileDriver:   "memory",
			CacheDriver:     "memory",
			CacheTTLSeconds: 600,
		},
		Engine: EngineConfig{
			MaxPlanSteps:  5,
			MaxCardTurns:  3,
			HistoryWindow: 10,
		},
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai", "ollama", "mock":
	default:
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}
	switch c.Storage.ProfileDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown profile driver %q", ErrInvalidConfig, c.Storage.ProfileDriver)
	}
	if c.Storage.ProfileDriver == "sqlite" && c.Storage.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite driver needs sqlite_path", ErrInvalidConfig)
	}
	switch c.Storage.CacheDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown cache driver %q", ErrInvalidConfig, c.Storage.CacheDriver)
	}
	if c.Storage.CacheDriver == "redis" && c.Storage.RedisAddr == "" {
		return fmt.Errorf("%w: redis driver needs redis_addr", ErrInvalidConfig)
	}
	if c.Engine.MaxPlanSteps <= 0 {
		return fmt.Errorf("%w: max_plan_steps must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxCardTurns <= 0 {
		return fmt.Errorf("%w: max_card_turns must be positive", ErrInvalidConfig)
	}
	return nil
}
