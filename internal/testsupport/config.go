package testsupport

import (
	"path/filepath"
	"testing"

	"cardkeep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.TCG.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTCGKey sets the card API key on the test config.
func WithTCGKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TCG.APIKey = key
	}
}

// WithAPIToken sets the ingestion API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithLookupDisabled turns off inline enrichment for the test config.
func WithLookupDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ingest.LookupEnabled = false
	}
}
