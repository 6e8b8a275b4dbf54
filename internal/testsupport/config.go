package testsupport

import (
	"path/filepath"
	"testing"

	"tally/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.HTTP.Listen = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMode selects how the CLI reaches the ledger in the test config.
func WithMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Service.Mode = mode
	}
}

// WithCredentials sets HTTP basic auth credentials on the test config.
func WithCredentials(username, password string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.HTTP.Username = username
		cfg.HTTP.Password = password
	}
}

// WithBaseURL points the HTTP client at an explicit service address, typically
// an httptest server URL.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.HTTP.BaseURL = url
	}
}
