// Package project serves the read-only project catalog.
package project

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"
	"content-api/internal/repository"
	"content-api/internal/usecase/post"
)

// QueryObserver receives store query durations. metrics.ContentRecorder satisfies it.
type QueryObserver interface {
	ObserveQuery(operation string, d time.Duration)
}

// Service answers project queries. Logger, Metrics and Tracer are optional.
type Service struct {
	Repo    repository.ProjectRepository
	Logger  *slog.Logger
	Metrics QueryObserver
	Tracer  trace.Tracer
}

// List returns every project, most recently updated first.
func (s *Service) List(ctx context.Context) ([]*entity.Project, error) {
	ctx, span := s.tracer().Start(ctx, "project.List")
	defer span.End()

	start := time.Now()
	projects, err := s.Repo.List(ctx)
	s.observe("list_projects", start)
	if err != nil {
		return nil, s.fail(ctx, span, "list_projects", err)
	}
	if projects == nil {
		projects = []*entity.Project{}
	}
	span.SetAttributes(attribute.Int("projects.count", len(projects)))
	return projects, nil
}

// Get returns the project with slug, or (nil, nil) if there is none.
func (s *Service) Get(ctx context.Context, slug string) (*entity.Project, error) {
	ctx, span := s.tracer().Start(ctx, "project.Get", trace.WithAttributes(attribute.String("project.slug", slug)))
	defer span.End()

	if err := entity.ValidateSlug(slug); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	p, err := s.Repo.GetBySlug(ctx, slug)
	s.observe("get_project", start)
	if err != nil {
		return nil, s.fail(ctx, span, "get_project", err)
	}
	return p, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error) error {
	serr := &post.StoreError{Op: op, Err: err}
	logging.OrDefault(s.Logger).ErrorContext(ctx, "project query failed",
		slog.String("op", op),
		slog.Any("error", err))
	tracing.RecordError(span, serr)
	return serr
}

func (s *Service) observe(op string, start time.Time) {
	if s.Metrics != nil {
		s.Metrics.ObserveQuery(op, time.Since(start))
	}
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return tracing.GetTracer()
	}
	return s.Tracer
}
