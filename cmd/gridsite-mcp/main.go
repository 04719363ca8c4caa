package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"gridsite/internal/config"
	"gridsite/internal/dataset"
	"gridsite/internal/logging"
	"gridsite/internal/mcpserver"
	"gridsite/internal/metrics"
	"gridsite/internal/version"
)

const serverName = "gridsite-mcp"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// fallback logger
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to init logger", zap.Error(err))
	}
	defer logger.Sync()

	m := metrics.New()
	src := dataset.New(cfg, logger, m)
	defer src.Close()

	// Tools report DATA_UNAVAILABLE while the source is unreadable.
	if _, err := src.Table(ctx); err != nil {
		logger.Warn("initial node dataset load failed", zap.Error(err))
	}
	if cfg.WatchSource {
		watch(ctx, src, logger)
	}

	srv := mcpserver.New(&mcp.Implementation{Name: serverName, Version: version.Version}, cfg, logger, src, m)

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(ctx, srv, logger)
	case config.TransportSSE:
		handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server { return srv.MCP() }, nil)
		runHTTP(ctx, "SSE", handler, cfg, m, logger)
	case config.TransportStreamable:
		handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return srv.MCP() }, nil)
		runHTTP(ctx, "Streamable HTTP", handler, cfg, m, logger)
	default:
		logger.Fatal("unknown transport", zap.String("transport", string(cfg.Transport)))
	}
}

func watch(ctx context.Context, src *dataset.Source, logger *zap.Logger) {
	err := src.Watch(ctx, func(rows int, err error) {
		if err != nil {
			logger.Warn("node dataset reload failed; keeping previous table", zap.Error(err))
			return
		}
		logger.Info("node dataset reloaded", zap.Int("rows", rows))
	})
	if err != nil {
		logger.Warn("cannot watch node dataset", logging.FieldSource(src.Path()), zap.Error(err))
	}
}

func runStdio(ctx context.Context, srv *mcpserver.Server, logger *zap.Logger) {
	transport := &mcp.StdioTransport{}
	logger.Info("starting gridsite-mcp server (stdio)", zap.String("name", serverName), zap.String("version", version.Version))
	if err := srv.Run(ctx, transport); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func runHTTP(ctx context.Context, kind string, handler http.Handler, cfg config.Config, m *metrics.Metrics, logger *zap.Logger) {
	addr := cfg.Addr()
	logger.Info("starting gridsite-mcp server ("+kind+")",
		zap.String("name", serverName),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", cfg.HTTPPath),
		zap.String("metrics", cfg.MetricsPath),
	)

	mux := http.NewServeMux()
	mux.Handle(cfg.HTTPPath, handler)
	if cfg.MetricsPath != "" {
		mux.Handle(cfg.MetricsPath, m.Handler())
	}

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
