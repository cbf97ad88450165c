// Package config provides centralized configuration for the persistence
// tools. Settings come from an optional YAML file, then environment
// variables, and are validated before use so misconfiguration fails fast.
package config

import (
	"time"

	"number-persistence/internal/persistence"
	"number-persistence/internal/search"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Cache    CacheConfig    `yaml:"cache"`
	Search   SearchConfig   `yaml:"search"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level"`

	// Format is the encoding: json or console (default: console)
	Format string `yaml:"format"`
}

// CacheConfig controls memoization of divide-and-conquer digit products.
type CacheConfig struct {
	// Policy is one of unbounded, lru, per-candidate, none (default: lru)
	Policy string `yaml:"policy"`

	// Capacity bounds the lru policy (default: 102048)
	Capacity int `yaml:"capacity"`

	// FoldThreshold is the longest digit run multiplied without splitting (default: 8)
	FoldThreshold int `yaml:"fold_threshold"`
}

// SearchConfig holds range search settings.
type SearchConfig struct {
	// Output is the CSV record log for long searches
	// (default: multiplicative-persistence-data.csv)
	Output string `yaml:"output"`

	// Exponent k selects the long-search range [10^k, 10^(k+1)) (default: 20588)
	Exponent int `yaml:"exponent"`

	// Substitution overrides the long-search digit substitution policy
	// (default: skip-unlikely-digits)
	Substitution string `yaml:"substitution"`

	// ProgressInterval is how many candidates pass between progress lines (default: 100000)
	ProgressInterval int64 `yaml:"progress_interval"`

	// Workers bounds parallel batch checks; 0 uses every CPU (default: 0)
	Workers int `yaml:"workers"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxDigits rejects API numbers longer than this (default: 100000)
	MaxDigits int `yaml:"max_digits"`
}

// DatabaseConfig holds SQLite record store settings.
type DatabaseConfig struct {
	// Path is the SQLite file; empty disables the store (default: empty)
	Path string `yaml:"path"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: CacheConfig{
			Policy:        string(persistence.PolicyLRU),
			Capacity:      persistence.DefaultCacheCapacity,
			FoldThreshold: persistence.DefaultFoldThreshold,
		},
		Search: SearchConfig{
			Output:           "multiplicative-persistence-data.csv",
			Exponent:         search.DefaultLongSearchExponent,
			Substitution:     search.SkipUnlikelyDigits.Name(),
			ProgressInterval: 100_000,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxDigits:       100_000,
		},
	}
}

// CalculatorOptions translates the cache settings into calculator options.
// The strategy is left to the caller.
func (c *Config) CalculatorOptions() []persistence.Option {
	policy, _ := persistence.ParseCachePolicy(c.Cache.Policy)
	return []persistence.Option{
		persistence.WithCachePolicy(policy, c.Cache.Capacity),
		persistence.WithFoldThreshold(c.Cache.FoldThreshold),
	}
}
