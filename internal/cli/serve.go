package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kylelegare/cu-MCP/internal/ipc"
	"github.com/kylelegare/cu-MCP/internal/logger"
	"github.com/kylelegare/cu-MCP/internal/version"
)

var (
	flagMetricsAddr   string
	flagMaxConcurrent int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gateway over stdio",
	Long: `Serve reads newline-delimited JSON-RPC requests on stdin and writes
responses on stdout. Logs go to stderr so the wire stays clean. The
process stops on EOF, SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.Metrics.Addr = flagMetricsAddr
		}
		if cmd.Flags().Changed("max-concurrent") {
			cfg.Server.MaxConcurrent = flagMaxConcurrent
		}

		log := logger.Get()
		st, eng, rd, err := openGateway(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Metrics.Addr != "" {
			startMetricsListener(ctx, cfg.Metrics.Addr)
		}

		log.Info("gateway starting",
			"version", version.Version,
			"db", st.Path(),
			"timeout", cfg.Query.Timeout,
			"max_rows", cfg.Query.MaxRows,
		)

		handler := ipc.NewHandler(eng, rd, log)
		srv := ipc.NewServer(cfg.Server, handler, log, os.Stdin, os.Stdout)
		err = srv.Run(ctx)
		if err == context.Canceled {
			err = nil
		}
		log.Info("gateway stopped")
		return err
	},
}

// startMetricsListener serves promhttp on its own listener and shuts it
// down when ctx ends. Listener failures are logged, never fatal: metrics
// are an operational convenience, the gateway runs fine without them.
func startMetricsListener(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics listener failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
}

func init() {
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Address for the Prometheus /metrics listener (empty disables it)")
	serveCmd.Flags().IntVar(&flagMaxConcurrent, "max-concurrent", 0, "Concurrent request handlers (<=0 means unbounded)")
	rootCmd.AddCommand(serveCmd)
}
