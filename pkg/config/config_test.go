package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func resetViper() {
	viper.Reset()
}

func TestLoadAppliesDefaults(t *testing.T) {
	resetViper()
	defer resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("got log level %q, want info", cfg.Log.Level)
	}
	if cfg.Limits.MaxResultSize != 150 {
		t.Errorf("got MaxResultSize %d, want 150", cfg.Limits.MaxResultSize)
	}
	if cfg.Database.Provider != "neo4j" {
		t.Errorf("got provider %q, want neo4j", cfg.Database.Provider)
	}
	if cfg.CircuitBreaker.Enabled {
		t.Errorf("expected circuit breaker disabled by default")
	}
}

func TestLoadOverridesFromViperSet(t *testing.T) {
	resetViper()
	defer resetViper()

	viper.Set("limits.max_result_size", 42)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.MaxResultSize != 42 {
		t.Errorf("got %d, want 42", cfg.Limits.MaxResultSize)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	resetViper()
	defer resetViper()

	os.Setenv("GRAPH_DB_URI", "bolt://example:7687")
	os.Setenv("GRAPH_DB_PROVIDER", "ladybug")
	defer os.Unsetenv("GRAPH_DB_URI")
	defer os.Unsetenv("GRAPH_DB_PROVIDER")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URI != "bolt://example:7687" {
		t.Errorf("got URI %q", cfg.Database.URI)
	}
	if cfg.Database.Provider != "ladybug" {
		t.Errorf("got provider %q, want ladybug (env override)", cfg.Database.Provider)
	}
}

func TestDefaultLimitsMatchesLoadDefaults(t *testing.T) {
	resetViper()
	defer resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits != DefaultLimits() {
		t.Errorf("Load defaults %+v diverge from DefaultLimits() %+v", cfg.Limits, DefaultLimits())
	}
}
