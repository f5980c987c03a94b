package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/medley/internal/adapters/repository"
	"github.com/okian/medley/internal/adapters/sheet"
	app "github.com/okian/medley/internal/app"
	"github.com/okian/medley/internal/config"
	"github.com/okian/medley/pkg/logger"
	"github.com/okian/medley/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional metrics endpoint for scrape-while-running setups.
	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(ctx, cfg.MetricsAddr, loggerInstance)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Database connection, scoped to the configured club and season.
	store, err := repository.NewPostgres(ctx, cfg.DatabaseURL,
		repository.WithClub(cfg.Club),
		repository.WithYear(cfg.Year),
	)
	if err != nil {
		loggerInstance.Error(ctx, "failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.Migrate {
		if err := store.Migrate(ctx); err != nil {
			loggerInstance.Error(ctx, "failed to apply schema", logger.Error(err))
			os.Exit(1)
		}
	}

	svc := app.New(store, sheet.NewExcel(sheet.WithLogger(loggerInstance)),
		app.WithLogger(loggerInstance),
		app.WithYear(cfg.Year),
		app.WithBPercent(cfg.BPercent),
		app.WithSheets(cfg.SCYSheet, cfg.LCMSheet, cfg.SheetName),
		app.WithProgressInterval(cfg.ProgressInterval),
	)

	summary, err := svc.Run(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "classification run failed", logger.Error(err))
		os.Exit(1)
	}

	loggerInstance.Info(ctx, "classification run finished",
		logger.String("run_id", summary.RunID),
		logger.Int("total", summary.Total),
		logger.Int("anomalies", summary.Anomalies),
		logger.Duration("elapsed", summary.Elapsed),
	)
}

// startMetricsServer serves /metrics until the context is cancelled.
func startMetricsServer(ctx context.Context, addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting metrics server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logger.Error(fmt.Errorf("%w: %v", metrics.ErrServeFailed, err)))
		}
	}()

	return srv
}
