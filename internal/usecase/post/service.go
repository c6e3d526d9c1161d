package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"content-api/internal/common/pagination"
	"content-api/internal/config"
	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"
	"content-api/internal/pkg/search"
	"content-api/internal/repository"
	"content-api/internal/utils/markdown"
	"content-api/internal/utils/text"
)

// Service answers post queries. It holds no mutable state and is safe for concurrent use.
// Logger, Metrics and Tracer are optional.
type Service struct {
	Repo    repository.PostRepository
	Planner repository.ListingPlanner
	Blob    repository.BlobStore
	// Content locates post bodies in the blob store and controls asset rewriting.
	Content config.ContentTypeConfig
	// CDNBase prefixes rewritten image references.
	CDNBase string

	Logger  *slog.Logger
	Metrics MetricsRecorder
	Tracer  trace.Tracer
}

// ListResult is one page of a listing.
type ListResult struct {
	Items      []*entity.Post
	Pagination pagination.Metadata
}

// List returns one page of published posts matching q, newest first unless q says otherwise.
// Page and limit are clamped rather than rejected. More than MaxTagCount tags, a malformed
// tag, or an over-long search term yield a *entity.ValidationError. Store failures yield
// a *StoreError. Listings carrying a search term run under search.DefaultSearchTimeout.
func (s *Service) List(ctx context.Context, q repository.ListingQuery) (*ListResult, error) {
	ctx, span := s.tracer().Start(ctx, "post.List")
	defer span.End()

	q = q.Normalize()
	if err := validateListing(q); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	plan := s.Planner.Plan(q)
	span.SetAttributes(
		attribute.String("listing.shape", plan.Shape.String()),
		attribute.Int("listing.page", q.Page),
		attribute.Int("listing.limit", q.Limit),
	)
	s.metrics().RecordListing(plan.Shape.String())

	if plan.Shape == repository.SearchOnly || plan.Shape == repository.TagsAndSearch {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, search.DefaultSearchTimeout)
		defer cancel()
	}

	var (
		total int64
		found bool
		items []*entity.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		total, found, err = s.Repo.CountPosts(gctx, plan)
		s.metrics().ObserveQuery("count_posts", time.Since(start))
		if err != nil {
			return &StoreError{Op: "count_posts", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		items, err = s.Repo.ListPosts(gctx, plan)
		s.metrics().ObserveQuery("list_posts", time.Since(start))
		if err != nil {
			return &StoreError{Op: "list_posts", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger().ErrorContext(ctx, "listing query failed",
			slog.String("op", "post.List"),
			slog.String("shape", plan.Shape.String()),
			slog.Any("error", err))
		tracing.RecordError(span, err)
		return nil, err
	}

	if !found {
		s.logger().WarnContext(ctx, "count query returned no row, reporting total 0",
			slog.String("op", "post.List"),
			slog.String("shape", plan.Shape.String()))
		total = 0
	}
	if items == nil {
		items = []*entity.Post{}
	}
	span.SetAttributes(attribute.Int64("listing.total", total), attribute.Int("listing.items", len(items)))

	return &ListResult{
		Items:      items,
		Pagination: pagination.NewMetadata(q.Page, q.Limit, total),
	}, nil
}

// GetFull returns the published post with slug and its body. An unknown slug yields
// (nil, nil) without touching the blob store. A missing blob leaves Content nil.
func (s *Service) GetFull(ctx context.Context, slug string) (*entity.Post, error) {
	ctx, span := s.tracer().Start(ctx, "post.GetFull", trace.WithAttributes(attribute.String("post.slug", slug)))
	defer span.End()

	if err := entity.ValidateSlug(slug); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	p, err := s.Repo.GetBySlug(ctx, slug)
	s.metrics().ObserveQuery("get_post", time.Since(start))
	if err != nil {
		serr := &StoreError{Op: "get_post", Err: err}
		s.logger().ErrorContext(ctx, "post lookup failed",
			slog.String("op", "post.GetFull"),
			slog.String("slug", slug),
			slog.Any("error", err))
		tracing.RecordError(span, serr)
		return nil, serr
	}
	if p == nil {
		return nil, nil
	}

	key := s.blobKey(p.ContentID)
	span.SetAttributes(attribute.String("blob.key", key))

	start = time.Now()
	body, found, err := s.Blob.Fetch(ctx, key)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics().RecordBlobFetch(blobError, elapsed)
		berr := &BlobError{Key: key, Err: err}
		s.logger().ErrorContext(ctx, "blob fetch failed",
			slog.String("op", "post.GetFull"),
			slog.String("key", key),
			slog.Any("error", err))
		tracing.RecordError(span, berr)
		return nil, berr
	}
	if !found {
		s.metrics().RecordBlobFetch(blobMiss, elapsed)
		s.logger().DebugContext(ctx, "post body missing from blob store", slog.String("key", key))
		return p, nil
	}
	s.metrics().RecordBlobFetch(blobHit, elapsed)

	if s.Content.RewriteAssets {
		body = markdown.RewriteAssetRefs(body, markdown.AssetBase(s.CDNBase, s.Content.AssetNamespace, p.Slug))
	}
	p.Content = &body
	p.ReadTimeMinutes = text.ReadTimeMinutes(body)
	return p, nil
}

// AllTags returns every tag carried by at least one published post, ordered by name.
func (s *Service) AllTags(ctx context.Context) ([]entity.TagCount, error) {
	ctx, span := s.tracer().Start(ctx, "post.AllTags")
	defer span.End()

	start := time.Now()
	tags, err := s.Repo.ListTagCounts(ctx)
	s.metrics().ObserveQuery("list_tags", time.Since(start))
	if err != nil {
		serr := &StoreError{Op: "list_tags", Err: err}
		s.logger().ErrorContext(ctx, "tag aggregate failed",
			slog.String("op", "post.AllTags"),
			slog.Any("error", err))
		tracing.RecordError(span, serr)
		return nil, serr
	}
	if tags == nil {
		tags = []entity.TagCount{}
	}
	return tags, nil
}

// PublishedCount returns the number of posts currently visible through List.
func (s *Service) PublishedCount(ctx context.Context) (int64, error) {
	ctx, span := s.tracer().Start(ctx, "post.PublishedCount")
	defer span.End()

	start := time.Now()
	n, err := s.Repo.CountPublished(ctx)
	s.metrics().ObserveQuery("count_published", time.Since(start))
	if err != nil {
		serr := &StoreError{Op: "count_published", Err: err}
		tracing.RecordError(span, serr)
		return 0, serr
	}
	return n, nil
}

func (s *Service) blobKey(contentID string) string {
	ct := s.Content
	def := config.DefaultContentConfig().Content.Posts
	if ct.Namespace == "" {
		ct.Namespace = def.Namespace
	}
	if ct.Extension == "" {
		ct.Extension = def.Extension
	}
	return repository.BlobKey(ct.Namespace, contentID, ct.Extension)
}

func (s *Service) logger() *slog.Logger { return logging.OrDefault(s.Logger) }

func (s *Service) metrics() MetricsRecorder {
	if s.Metrics == nil {
		return noopMetrics{}
	}
	return s.Metrics
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return tracing.GetTracer()
	}
	return s.Tracer
}

func validateListing(q repository.ListingQuery) error {
	if len(q.Tags) > entity.MaxTagCount {
		return &entity.ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("at most %d tags may be given", entity.MaxTagCount),
		}
	}
	for _, t := range q.Tags {
		if _, ok := entity.NewTag(string(t)); !ok {
			return &entity.ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("invalid tag %q", string(t)),
			}
		}
	}
	return entity.ValidateSearch(q.Search)
}
