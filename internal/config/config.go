package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CUMCP_"

type Config struct {
	Store   StoreConfig
	Query   QueryConfig
	Catalog CatalogConfig
	Server  ServerConfig
	Metrics MetricsConfig
	Log     LogConfig
}

type StoreConfig struct {
	Path        string `mapstructure:"path"`         // SQLite file, opened read-only once at startup
	MaxSessions int    `mapstructure:"max_sessions"` // concurrent sessions handed out by the shared handle
}

type QueryConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`  // hard per-statement deadline
	MaxRows int           `mapstructure:"max_rows"` // result row cap; at most MaxRows+1 rows are read
}

type CatalogConfig struct {
	SampleRows     int      `mapstructure:"sample_rows"`     // rows sampled per descriptor, kept within 3-5
	RecencyColumns []string `mapstructure:"recency_columns"` // column names treated as recency dimensions
}

type ServerConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent"` // concurrent request handlers (<=0 = unbounded)
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // promhttp listen address; empty disables the listener
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // json, text
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path:        "./data/cu_data.db",
			MaxSessions: 8,
		},
		Query: QueryConfig{
			Timeout: 10 * time.Second,
			MaxRows: 1000,
		},
		Catalog: CatalogConfig{
			SampleRows:     5,
			RecencyColumns: []string{"cycle_date"},
		},
		Server: ServerConfig{
			MaxConcurrent: 16,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// Load returns the defaults overridden by an optional .env file and
// CUMCP_-prefixed environment variables. The section is taken from the
// first underscore-delimited word, so CUMCP_QUERY_MAX_ROWS maps to
// query.max_rows.
func Load() (*Config, error) {
	cfg := Default()
	v := viper.New()

	v.SetConfigFile(".env")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, envPrefix) {
			continue
		}
		// CUMCP_STORE_MAX_SESSIONS -> store.max_sessions
		rest := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		section, field, ok := strings.Cut(rest, "_")
		if !ok {
			continue
		}
		v.Set(section+"."+field, value)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}
	if c.Store.MaxSessions <= 0 {
		return fmt.Errorf("store max_sessions must be positive, got %d", c.Store.MaxSessions)
	}
	if c.Query.Timeout <= 0 {
		return fmt.Errorf("query timeout must be positive, got %s", c.Query.Timeout)
	}
	if c.Query.MaxRows <= 0 {
		return fmt.Errorf("query max_rows must be positive, got %d", c.Query.MaxRows)
	}
	if c.Catalog.SampleRows < 3 || c.Catalog.SampleRows > 5 {
		return fmt.Errorf("catalog sample_rows must be between 3 and 5, got %d", c.Catalog.SampleRows)
	}
	return nil
}
