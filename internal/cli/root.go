// Package cli wires the gateway's entrypoints: the stdio server, the
// interactive shell and one-shot commands that mirror the three tools
// for scripting. Configuration comes from the environment; a handful of
// flags override it per invocation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/catalog"
	"github.com/kylelegare/cu-MCP/internal/config"
	"github.com/kylelegare/cu-MCP/internal/logger"
	"github.com/kylelegare/cu-MCP/internal/query"
	"github.com/kylelegare/cu-MCP/internal/store"
)

var (
	flagDB        string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:           "cumcp",
	Short:         "Read-only SQL gateway for credit union call report data",
	Long: `cumcp exposes a curated credit union dataset through a safe SQL surface.
Statements are validated before execution, run on their own session under
a fixed deadline, and results are capped so no caller can flood itself.

The serve command speaks newline-delimited JSON-RPC over stdio; shell,
query, schema and examples drive the same gateway from a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to the SQLite database file (overrides CUMCP_STORE_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}

// loadConfig resolves configuration and applies persistent flag
// overrides, then initializes the process logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("db") {
		cfg.Store.Path = flagDB
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}

// openGateway opens the shared store and builds the engine and catalog
// reader on top of it. The caller owns the returned store.
func openGateway(cfg *config.Config) (*store.Store, *query.Engine, *catalog.Reader, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, nil, err
	}
	eng := query.New(st, cfg.Query)
	rd := catalog.NewReader(st, cfg.Catalog, cfg.Query.Timeout)
	return st, eng, rd, nil
}
