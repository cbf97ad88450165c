package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"number-persistence/internal/persistence"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persistence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "lru", cfg.Cache.Policy)
	assert.Equal(t, persistence.DefaultCacheCapacity, cfg.Cache.Capacity)
	assert.Equal(t, 8, cfg.Cache.FoldThreshold)
	assert.Equal(t, "multiplicative-persistence-data.csv", cfg.Search.Output)
	assert.Equal(t, 20588, cfg.Search.Exponent)
	assert.Equal(t, "skip-unlikely-digits", cfg.Search.Substitution)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
cache:
  policy: per-candidate
  fold_threshold: 4
search:
  output: /tmp/records.csv
  exponent: 100
  substitution: zero-to-one
server:
  addr: 127.0.0.1:9090
  read_timeout: 5s
database:
  path: records.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "per-candidate", cfg.Cache.Policy)
	assert.Equal(t, 4, cfg.Cache.FoldThreshold)
	assert.Equal(t, persistence.DefaultCacheCapacity, cfg.Cache.Capacity, "unset keys keep defaults")
	assert.Equal(t, "/tmp/records.csv", cfg.Search.Output)
	assert.Equal(t, 100, cfg.Search.Exponent)
	assert.Equal(t, "zero-to-one", cfg.Search.Substitution)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "records.db", cfg.Database.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "database:\n  path: from-file.db\ncache:\n  capacity: 10\n")
	t.Setenv("DB_PATH", "from-env.db")
	t.Setenv("CACHE_CAPACITY", "2048")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, 2048, cfg.Cache.Capacity)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		invalid bool
	}{
		{name: "malformed yaml", content: "log: [unterminated"},
		{name: "bad env integer", env: map[string]string{"CACHE_CAPACITY": "lots"}},
		{name: "unknown policy", content: "cache:\n  policy: fifo\n", invalid: true},
		{name: "unknown substitution", content: "search:\n  substitution: reverse\n", invalid: true},
		{name: "negative exponent", env: map[string]string{"SEARCH_EXPONENT": "-1"}, invalid: true},
		{name: "bad log level", content: "log:\n  level: loud\n", invalid: true},
		{name: "text log format", content: "log:\n  format: text\n", invalid: true},
		{name: "zero fold threshold", content: "cache:\n  fold_threshold: 0\n", invalid: true},
		{name: "empty output", content: "search:\n  output: \"\"\n", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/persistence.yaml")
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Cache.Capacity = -1
	cfg.Server.Addr = ""
	cfg.Server.MaxDigits = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.capacity")
	assert.Contains(t, err.Error(), "server.addr")
	assert.Contains(t, err.Error(), "server.max_digits")
}

func TestCalculatorOptions(t *testing.T) {
	cfg := Default()
	cfg.Cache.Policy = "per-candidate"

	opts := append(cfg.CalculatorOptions(), persistence.WithStrategy(persistence.StrategyDivideAndConquer))
	calc, err := persistence.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, persistence.PolicyPerCandidate, calc.Policy())
}
