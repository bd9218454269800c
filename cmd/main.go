package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/wodboard/internal/adapters/http/api"
	"github.com/okian/wodboard/internal/adapters/http/swagger"
	"github.com/okian/wodboard/internal/adapters/render"
	"github.com/okian/wodboard/internal/adapters/repository"
	"github.com/okian/wodboard/internal/adapters/source"
	app "github.com/okian/wodboard/internal/app"
	"github.com/okian/wodboard/internal/config"
	"github.com/okian/wodboard/internal/domain/scoring"
	"github.com/okian/wodboard/internal/domain/table"
	"github.com/okian/wodboard/pkg/logger"
	"github.com/okian/wodboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
	summaryTopRows            = 10
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if cfg.LogFormat != "" && cfg.LogFormat != "text" {
		if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
			os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
			return 1
		}
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, report, err := build(cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build service", logger.Error(err))
		return 1
	}
	loggerInstance.Info(ctx, "leaderboard configured",
		logger.String("mode", cfg.Mode),
		logger.Bool("cache_bust", cfg.CacheBust),
		logger.Bool("decimal_comma", cfg.DecimalComma),
	)

	if cfg.Mode == config.ModeGenerate {
		if _, err := svc.Refresh(ctx); err != nil {
			return 1
		}
		return 0
	}
	return serve(ctx, cfg, svc, report, loggerInstance)
}

// build wires source, engine, store and sinks from cfg.
func build(cfg *config.Config, log logger.Logger) (*app.Service, *render.HTML, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	src, err := source.New(source.Spec{
		URL:        cfg.SourceURL,
		Path:       cfg.SourceFile,
		Format:     cfg.SourceFormat,
		Sheet:      cfg.SourceSheet,
		HeaderHint: cfg.CategoryColumn,
		CacheBust:  cfg.CacheBust,
		Timeout:    cfg.FetchTimeout(),
	})
	if err != nil {
		return nil, nil, err
	}

	report := render.NewHTML(cfg.OutputHTML, render.WithTitle(cfg.Title), render.WithLocation(loc))
	var sinks []render.Sink
	if cfg.OutputHTML != "" {
		sinks = append(sinks, report)
	}
	if cfg.OutputXLSX != "" {
		sinks = append(sinks, render.NewXLSX(cfg.OutputXLSX))
	}
	if cfg.OutputJSON != "" {
		sinks = append(sinks, render.NewJSON(cfg.OutputJSON))
	}
	if cfg.PrintSummary {
		sinks = append(sinks, render.NewText(os.Stdout, summaryTopRows))
	}

	svc := app.New(src,
		app.WithLogger(log),
		app.WithSchema(table.Schema{
			CategoryColumn:     cfg.CategoryColumn,
			TeamColumn:         cfg.TeamColumn,
			PassthroughColumns: cfg.PassthroughColumns,
			ResultSuffix:       cfg.ResultSuffix,
			TimeToken:          cfg.TimeToken,
		}),
		app.WithNormalizer(scoring.NewParser(
			scoring.WithCapMarker(cfg.CapMarker),
			scoring.WithDecimalComma(cfg.DecimalComma),
		)),
		app.WithEngine(app.NewEngine(app.WithParallelism(cfg.Parallelism))),
		app.WithStore(repository.NewSnapshotStore(repository.WithMaxLimit(cfg.MaxLeaderboardLimit))),
		app.WithSinks(sinks...),
		app.WithRefreshInterval(cfg.RefreshInterval()),
	)
	return svc, report, nil
}

// newMux registers the business API and the OpenAPI document.
func newMux(cfg *config.Config, svc *app.Service, report *render.HTML) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(mux)
	apiServer := api.NewServer(svc, svc, report, api.WithMaxLimit(cfg.MaxLeaderboardLimit))
	apiServer.Register(mux)
	return mux
}

func serve(ctx context.Context, cfg *config.Config, svc *app.Service, report *render.HTML, log logger.Logger) int {
	if cfg.RefreshIntervalS > 0 {
		if err := svc.Start(ctx); err != nil {
			log.Error(ctx, "failed to start service", logger.Error(err))
			return 1
		}
		defer svc.Stop()
	} else {
		_, _ = svc.Refresh(ctx)
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(cfg, svc, report),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or a listener failure
	code := 0
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case err := <-errCh:
		log.Error(ctx, "HTTP server failed", logger.Error(err))
		code = 1
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return code
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
