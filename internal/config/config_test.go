package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	if cfg.Query.Timeout != 10*time.Second {
		t.Fatalf("default query timeout = %s, want 10s", cfg.Query.Timeout)
	}
	if cfg.Query.MaxRows != 1000 {
		t.Fatalf("default max rows = %d, want 1000", cfg.Query.MaxRows)
	}
	if cfg.Catalog.SampleRows != 5 {
		t.Fatalf("default sample rows = %d, want 5", cfg.Catalog.SampleRows)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty store path", func(c *Config) { c.Store.Path = "" }, "store path"},
		{"zero sessions", func(c *Config) { c.Store.MaxSessions = 0 }, "max_sessions"},
		{"zero timeout", func(c *Config) { c.Query.Timeout = 0 }, "timeout"},
		{"negative max rows", func(c *Config) { c.Query.MaxRows = -1 }, "max_rows"},
		{"sample rows too low", func(c *Config) { c.Catalog.SampleRows = 2 }, "sample_rows"},
		{"sample rows too high", func(c *Config) { c.Catalog.SampleRows = 6 }, "sample_rows"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %q, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CUMCP_STORE_PATH", "/srv/cu/cu_data.db")
	t.Setenv("CUMCP_QUERY_TIMEOUT", "2s")
	t.Setenv("CUMCP_QUERY_MAX_ROWS", "50")
	t.Setenv("CUMCP_CATALOG_RECENCY_COLUMNS", "cycle_date,report_date")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Store.Path != "/srv/cu/cu_data.db" {
		t.Fatalf("store path = %q, want override", cfg.Store.Path)
	}
	if cfg.Query.Timeout != 2*time.Second {
		t.Fatalf("query timeout = %s, want 2s", cfg.Query.Timeout)
	}
	if cfg.Query.MaxRows != 50 {
		t.Fatalf("max rows = %d, want 50", cfg.Query.MaxRows)
	}
	if len(cfg.Catalog.RecencyColumns) != 2 || cfg.Catalog.RecencyColumns[1] != "report_date" {
		t.Fatalf("recency columns = %v, want [cycle_date report_date]", cfg.Catalog.RecencyColumns)
	}
	if cfg.Store.MaxSessions != 8 {
		t.Fatalf("max sessions = %d, want untouched default 8", cfg.Store.MaxSessions)
	}
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	t.Setenv("CUMCP_QUERY_MAX_ROWS", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a negative row cap")
	}
}
