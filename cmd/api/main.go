package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"content-api/internal/app"
	"content-api/internal/common/pagination"
	"content-api/internal/config"
	"content-api/internal/infra/worker"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"

	postUC "content-api/internal/usecase/post"

	hhttp "content-api/internal/handler/http"
	"content-api/internal/handler/http/middleware"
	hpost "content-api/internal/handler/http/post"
	hproject "content-api/internal/handler/http/project"
	hresume "content-api/internal/handler/http/resume"
	"content-api/internal/handler/http/requestid"
)

const serviceName = "content-api"

func main() {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)
	version := getVersion()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown := tracing.NewProvider(float64(cfg.TraceSamplePercent) / 100)
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("failed to shut down tracer provider", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled", slog.Int("sample_percent", cfg.TraceSamplePercent))
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize services", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupRoutes(logger, cfg, a, version)
	refresher := startRefresher(ctx, logger, a.Posts)

	runServer(ctx, logger, cfg, handler, version)

	if refresher != nil {
		refresher.Stop()
	}
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and installs it as the default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	text := os.Getenv("LOG_FORMAT") == "text"
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), text)
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupRoutes mounts the resource and operational routes and wraps them in middleware.
func setupRoutes(logger *slog.Logger, cfg *config.AppConfig, a *app.App, version string) http.Handler {
	breakers := map[string]hhttp.BreakerStater{"blob_store": a.BlobBreaker}
	if a.DBBreaker != nil {
		breakers["database"] = a.DBBreaker
	}

	mux := http.NewServeMux()
	hpost.Register(mux, a.Posts, pagination.LoadFromEnv(), logger)
	hproject.Register(mux, a.Projects)
	hresume.Register(mux, a.Resume)
	hhttp.RegisterOps(mux,
		&hhttp.HealthHandler{
			DB:       a.Exec,
			Pool:     a.DB,
			Blob:     a.Blob,
			Breakers: breakers,
			Version:  version,
		},
		hhttp.InfoHandler{Service: serviceName, Version: version},
	)
	return applyMiddleware(logger, cfg, mux)
}

// applyMiddleware wraps the mux, outermost first. Metrics and tracing sit directly
// on the mux so they see the matched route pattern.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, mux http.Handler) http.Handler {
	if len(cfg.CORSAllowedOrigins) == 0 {
		logger.Warn("CORS_ALLOWED_ORIGINS is empty; cross-origin browser requests will be blocked")
	}
	corsCfg := middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)
	corsCfg.Logger = logger

	mws := []func(http.Handler) http.Handler{
		requestid.Middleware,
		middleware.SecurityHeaders,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		middleware.CORS(corsCfg),
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			TrustProxyHeaders: cfg.RateLimit.TrustProxyHeaders,
			Logger:            logger,
		})
		mws = append(mws, limiter.Middleware)
		logger.Info("rate limiting enabled",
			slog.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			slog.Int("burst", cfg.RateLimit.Burst))
	}
	if cfg.RequestTimeout > 0 {
		mws = append(mws, hhttp.Timeout(cfg.RequestTimeout))
	}
	mws = append(mws,
		hhttp.InputValidation(),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(mux, mws...)
}

// startRefresher runs the published-post refresh once and then on its schedule.
// It returns nil when the refresher is disabled.
func startRefresher(ctx context.Context, logger *slog.Logger, posts *postUC.Service) *worker.Refresher {
	m := worker.NewRefreshMetrics(prometheus.DefaultRegisterer)
	cfg := worker.LoadConfigFromEnv(logger, m.ConfigMetrics)
	if !cfg.Enabled {
		logger.Info("stats refresher disabled")
		return nil
	}

	r := &worker.Refresher{Counter: posts, Config: cfg, Metrics: m, Logger: logger}
	_ = r.RunOnce(ctx)
	if err := r.Start(ctx); err != nil {
		logger.Error("failed to start stats refresher", slog.Any("error", err))
		return nil
	}
	return r
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, handler http.Handler, version string) {
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
