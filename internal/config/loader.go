package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"number-persistence/internal/persistence"
	"number-persistence/internal/search"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config load %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides settings from environment variables.
func applyEnv(cfg *Config) error {
	strVars := map[string]*string{
		"LOG_LEVEL":          &cfg.Log.Level,
		"LOG_FORMAT":         &cfg.Log.Format,
		"CACHE_POLICY":       &cfg.Cache.Policy,
		"PERSISTENCE_OUTPUT": &cfg.Search.Output,
		"SERVER_ADDR":        &cfg.Server.Addr,
		"DB_PATH":            &cfg.Database.Path,
	}
	for name, dst := range strVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"CACHE_CAPACITY":       &cfg.Cache.Capacity,
		"CACHE_FOLD_THRESHOLD": &cfg.Cache.FoldThreshold,
		"SEARCH_EXPONENT":      &cfg.Search.Exponent,
		"SEARCH_WORKERS":       &cfg.Search.Workers,
	}
	for name, dst := range intVars {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, v, err)
		}
		*dst = n
	}

	return nil
}

// Validate checks all settings and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, console", c.Log.Format))
	}

	if _, err := persistence.ParseCachePolicy(c.Cache.Policy); err != nil {
		errs = append(errs, fmt.Errorf("cache.policy: %w", err))
	}
	if c.Cache.Capacity < 0 {
		errs = append(errs, fmt.Errorf("cache.capacity must be >= 0, got %d", c.Cache.Capacity))
	}
	if c.Cache.FoldThreshold < 1 {
		errs = append(errs, fmt.Errorf("cache.fold_threshold must be >= 1, got %d", c.Cache.FoldThreshold))
	}

	if c.Search.Output == "" {
		errs = append(errs, errors.New("search.output must not be empty"))
	}
	if c.Search.Exponent < 0 {
		errs = append(errs, fmt.Errorf("search.exponent must be >= 0, got %d", c.Search.Exponent))
	}
	if _, err := search.SubstitutionByName(c.Search.Substitution); err != nil {
		errs = append(errs, fmt.Errorf("search.substitution: %w", err))
	}
	if c.Search.ProgressInterval < 0 {
		errs = append(errs, fmt.Errorf("search.progress_interval must be >= 0, got %d", c.Search.ProgressInterval))
	}
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.MaxDigits <= 0 {
		errs = append(errs, fmt.Errorf("server.max_digits must be > 0, got %d", c.Server.MaxDigits))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be > 0, got %s", c.Server.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
