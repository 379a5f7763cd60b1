package testsupport

import (
	"path/filepath"
	"testing"

	"pictura/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The captioning service is disabled by default; tests that exercise it set
// a base URL with WithOllama.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDB = filepath.Join(base, "library.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Ollama.Enabled = false
	cfg.Ollama.RateLimitDelay = 0
	cfg.Library.BatchPauseMillis = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOllama enables the captioning service against the given base URL.
func WithOllama(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ollama.Enabled = true
		cfg.Ollama.BaseURL = baseURL
	}
}

// WithCacheHours overrides the cache freshness window.
func WithCacheHours(hours int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ollama.CacheHours = hours
	}
}
