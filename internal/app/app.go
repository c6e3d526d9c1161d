// Package app assembles the content services from AppConfig. cmd/api serves them
// over HTTP; cmd/contentctl calls them directly.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"content-api/internal/config"
	pgRepo "content-api/internal/infra/adapter/persistence/postgres"
	sqliteRepo "content-api/internal/infra/adapter/persistence/sqlite"
	"content-api/internal/infra/blob"
	"content-api/internal/infra/db"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
	"content-api/internal/resilience/circuitbreaker"
	"content-api/internal/resilience/retry"
	postUC "content-api/internal/usecase/post"
	projectUC "content-api/internal/usecase/project"
	resumeUC "content-api/internal/usecase/resume"
)

// BlobStore is a body backend that can also be probed.
type BlobStore interface {
	repository.BlobStore
	Ping(ctx context.Context) error
}

// App holds the wired services and the resources behind them.
type App struct {
	DB *sql.DB
	// Exec is DB, or DBBreaker when the database circuit breaker is enabled.
	Exec      repository.QueryExecutor
	DBBreaker *circuitbreaker.DBCircuitBreaker // nil when disabled
	// Blob is the raw store; services fetch through BlobBreaker.
	Blob        BlobStore
	BlobBreaker *circuitbreaker.BlobCircuitBreaker

	Posts    *postUC.Service
	Projects *projectUC.Service
	Resume   *resumeUC.Service
}

// New opens the database and blob store, waiting for both to come up, and builds
// the services. The caller owns the result and must Close it.
func New(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*App, error) {
	database, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{DB: database, Exec: database}
	if cfg.DBCircuitBreaker {
		a.DBBreaker = circuitbreaker.NewDBCircuitBreaker(database)
		a.Exec = a.DBBreaker
	}

	store, err := OpenBlobStore(ctx, cfg.Blob, logger)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	a.Blob = store
	a.BlobBreaker = circuitbreaker.NewBlobCircuitBreaker(store, circuitbreaker.BlobConfig())

	contentCfg, err := config.LoadContentConfig(cfg.ContentConfigFile)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	posts := contentCfg.Content.Posts
	if posts.RewriteAssets && cfg.CDNBase() == "" {
		logger.Warn("CDN_BASE_URL is empty; relative image references will be rewritten to root-relative paths")
	}

	var (
		postRepo    repository.PostRepository
		projectRepo repository.ProjectRepository
		planner     repository.ListingPlanner
	)
	switch cfg.DBDriver {
	case db.DriverPostgres:
		postRepo = pgRepo.NewPostRepo(a.Exec)
		projectRepo = pgRepo.NewProjectRepo(a.Exec)
		planner = pgRepo.NewPostQueryPlanner()
	default:
		postRepo = sqliteRepo.NewPostRepo(a.Exec)
		projectRepo = sqliteRepo.NewProjectRepo(a.Exec)
		planner = sqliteRepo.NewPostQueryPlanner()
	}

	a.Posts = &postUC.Service{
		Repo:    postRepo,
		Planner: planner,
		Blob:    a.BlobBreaker,
		Content: posts,
		CDNBase: cfg.CDNBase(),
		Logger:  logger,
		Metrics: metrics.ContentRecorder{},
	}
	a.Projects = &projectUC.Service{
		Repo:    projectRepo,
		Logger:  logger,
		Metrics: metrics.ContentRecorder{},
	}
	a.Resume = &resumeUC.Service{
		Blob:    a.BlobBreaker,
		Content: contentCfg.Content.Resume,
		Logger:  logger,
		Metrics: metrics.ContentRecorder{},
	}
	return a, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// OpenDatabase opens the relational store with startup retries and, when
// DBApplySchema is set, creates the tables.
func OpenDatabase(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, error) {
	var database *sql.DB
	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
		var err error
		database, err = db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.DBApplySchema {
		if err := db.ApplySchema(ctx, database, cfg.DBDriver); err != nil {
			_ = database.Close()
			return nil, err
		}
		logger.Info("schema applied", slog.String("driver", cfg.DBDriver))
	}
	return database, nil
}

// OpenBlobStore builds the configured backend and waits until it answers a ping.
func OpenBlobStore(ctx context.Context, cfg config.BlobConfig, logger *slog.Logger) (BlobStore, error) {
	var (
		store BlobStore
		err   error
	)
	switch cfg.Backend {
	case config.BlobBackendS3:
		store, err = blob.NewS3Store(ctx, blob.S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			UsePathStyle:    cfg.UsePathStyle,
		})
	case config.BlobBackendFS:
		store, err = blob.NewFSStore(cfg.FSDir)
	case config.BlobBackendMemory:
		logger.Warn("using an empty in-memory blob store; every body will be missing")
		store = blob.NewMemoryStore()
	default:
		err = errors.New("unknown blob backend " + cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	err = retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
		return store.Ping(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("blob store unreachable: %w", err)
	}
	logger.Info("blob store ready", slog.String("backend", cfg.Backend))
	return store, nil
}
