package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swap-link/config"
	"swap-link/pkg/dispatch"
	"swap-link/pkg/metrics"
	"swap-link/pkg/parser"
	"swap-link/pkg/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve swap deep links over HTTP",
	Long: `Run an HTTP server that handles swap deep links.

Endpoints:
  GET /swap?<link query>   returns the "open swap" event as JSON
  GET /healthz             liveness
  GET /metrics             Prometheus metrics

Examples:
  swap-link serve
  swap-link serve --listen 127.0.0.1:9000`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (defaults to listen_addr from config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Get()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer logger.Sync()

	validator, err := newValidator(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	address := listenAddr
	if address == "" {
		address = cfg.ListenAddr
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, address, validator, logger)
	stop()

	if err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		printError(err)
		os.Exit(1)
	}
}

// serve runs the swap link server on address until ctx is cancelled
func serve(ctx context.Context, address string, validator *parser.Validator, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	dispatcher := dispatch.NewDispatcher(validator,
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(metrics.NewMetrics(reg)),
	)

	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(address, dispatcher, reg, logger)

	return srv.Start(ctx)
}
