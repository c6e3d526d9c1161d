// Package resume serves the single resume document kept in the blob store.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"content-api/internal/config"
	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"
	"content-api/internal/repository"
	"content-api/internal/usecase/post"
)

// MaxLimit caps Filter.Limit.
const MaxLimit = 100

// documentID is the content ID of the resume inside its namespace.
const documentID = "resume"

// ErrMalformed is returned when the stored document is not a valid resume.
var ErrMalformed = errors.New("resume document is malformed")

// BlobObserver receives blob fetch outcomes. metrics.ContentRecorder satisfies it.
type BlobObserver interface {
	RecordBlobFetch(result string, d time.Duration)
}

// Filter narrows the document. The zero value returns it unchanged.
type Filter struct {
	// Sections keeps only the named sections. nil keeps all; an empty slice keeps none.
	Sections []entity.ResumeSection
	// Tags keeps tagged entries carrying any of these tags. Empty means no tag filter.
	Tags    []entity.Tag
	Minimal bool
	// Limit truncates every list section. nil means unlimited; values above MaxLimit are capped.
	Limit *int
}

// Service loads and filters the resume. Logger, Metrics and Tracer are optional.
type Service struct {
	Blob    repository.BlobStore
	Content config.ContentTypeConfig
	Logger  *slog.Logger
	Metrics BlobObserver
	Tracer  trace.Tracer
}

// Get returns the resume narrowed by f, or (nil, nil) if no document is stored.
// Filters apply in a fixed order: sections, tags, limit, then minimal.
// Blob failures yield a *post.BlobError; an unparsable document yields ErrMalformed.
func (s *Service) Get(ctx context.Context, f Filter) (*entity.Resume, error) {
	ctx, span := s.tracer().Start(ctx, "resume.Get")
	defer span.End()

	key := s.key()
	span.SetAttributes(attribute.String("blob.key", key))

	start := time.Now()
	raw, found, err := s.Blob.Fetch(ctx, key)
	elapsed := time.Since(start)
	if err != nil {
		s.observe("error", elapsed)
		berr := &post.BlobError{Key: key, Err: err}
		s.logger().ErrorContext(ctx, "blob fetch failed",
			slog.String("op", "resume.Get"),
			slog.String("key", key),
			slog.Any("error", err))
		tracing.RecordError(span, berr)
		return nil, berr
	}
	if !found {
		s.observe("miss", elapsed)
		return nil, nil
	}
	s.observe("hit", elapsed)

	var r entity.Resume
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		merr := fmt.Errorf("%w: %v", ErrMalformed, err)
		s.logger().ErrorContext(ctx, "resume document does not parse",
			slog.String("op", "resume.Get"),
			slog.String("key", key),
			slog.Any("error", err))
		tracing.RecordError(span, merr)
		return nil, merr
	}

	if f.Sections != nil {
		r.KeepSections(f.Sections)
	}
	if len(f.Tags) > 0 {
		r.FilterByTags(f.Tags)
	}
	if f.Limit != nil {
		r.LimitItems(min(*f.Limit, MaxLimit))
	}
	if f.Minimal {
		r.Minimize()
	}
	return &r, nil
}

func (s *Service) key() string {
	ct := s.Content
	def := config.DefaultContentConfig().Content.Resume
	if ct.Namespace == "" {
		ct.Namespace = def.Namespace
	}
	if ct.Extension == "" {
		ct.Extension = def.Extension
	}
	return repository.BlobKey(ct.Namespace, documentID, ct.Extension)
}

func (s *Service) observe(result string, d time.Duration) {
	if s.Metrics != nil {
		s.Metrics.RecordBlobFetch(result, d)
	}
}

func (s *Service) logger() *slog.Logger { return logging.OrDefault(s.Logger) }

func (s *Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return tracing.GetTracer()
	}
	return s.Tracer
}
