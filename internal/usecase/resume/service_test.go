package resume_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"content-api/internal/config"
	"content-api/internal/domain/entity"
	"content-api/internal/infra/blob"
	"content-api/internal/usecase/post"
	"content-api/internal/usecase/resume"
	"content-api/tests/fixtures"
)

type failingBlob struct{ err error }

func (f failingBlob) Fetch(context.Context, string) (string, bool, error) { return "", false, f.err }

type fetches struct{ results []string }

func (f *fetches) RecordBlobFetch(result string, _ time.Duration) {
	f.results = append(f.results, result)
}

func intPtr(n int) *int { return &n }

/* ─── Get ─── */

func TestGet_Unfiltered(t *testing.T) {
	obs := &fetches{}
	svc := &resume.Service{Blob: fixtures.ResumeBlobs(), Metrics: obs}

	r, err := svc.Get(context.Background(), resume.Filter{})
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, "Ada", r.Personal.FirstName)
	assert.Len(t, r.Experience, 2)
	assert.Len(t, r.Education, 1)
	assert.Len(t, r.Projects, 2)
	assert.Len(t, r.Extracurricular, 2)
	require.NotNil(t, r.Experience[1].EndDate)
	assert.Equal(t, "2020-09", *r.Experience[1].EndDate)
	assert.Equal(t, []string{"hit"}, obs.results)
}

func TestGet_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter resume.Filter
		check  func(t *testing.T, r *entity.Resume)
	}{
		{
			name:   "sections",
			filter: resume.Filter{Sections: []entity.ResumeSection{entity.SectionProjects}},
			check: func(t *testing.T, r *entity.Resume) {
				assert.Nil(t, r.Personal)
				assert.Empty(t, r.Experience)
				assert.Empty(t, r.Education)
				assert.Len(t, r.Projects, 2)
				assert.Empty(t, r.Extracurricular)
			},
		},
		{
			name:   "no known sections keeps nothing",
			filter: resume.Filter{Sections: []entity.ResumeSection{}},
			check: func(t *testing.T, r *entity.Resume) {
				assert.Nil(t, r.Personal)
				assert.Empty(t, r.Projects)
			},
		},
		{
			name:   "tags",
			filter: resume.Filter{Tags: []entity.Tag{"go"}},
			check: func(t *testing.T, r *entity.Resume) {
				require.Len(t, r.Experience, 1)
				assert.Equal(t, "Backend Engineer", r.Experience[0].Title)
				require.Len(t, r.Projects, 1)
				assert.Equal(t, "content-api", r.Projects[0].Title)
				require.Len(t, r.Extracurricular, 1)
				assert.Len(t, r.Education, 1)
			},
		},
		{
			name:   "limit",
			filter: resume.Filter{Limit: intPtr(1)},
			check: func(t *testing.T, r *entity.Resume) {
				assert.Len(t, r.Experience, 1)
				assert.Len(t, r.Projects, 1)
				assert.Len(t, r.Extracurricular, 1)
			},
		},
		{
			name:   "limit above cap",
			filter: resume.Filter{Limit: intPtr(1_000_000)},
			check: func(t *testing.T, r *entity.Resume) {
				assert.Len(t, r.Experience, 2)
			},
		},
		{
			name:   "tags before limit",
			filter: resume.Filter{Tags: []entity.Tag{"python"}, Limit: intPtr(1)},
			check: func(t *testing.T, r *entity.Resume) {
				require.Len(t, r.Experience, 1)
				assert.Equal(t, "Intern", r.Experience[0].Title)
			},
		},
		{
			name:   "minimal",
			filter: resume.Filter{Minimal: true},
			check: func(t *testing.T, r *entity.Resume) {
				assert.Empty(t, r.Experience[0].Description)
				assert.Nil(t, r.Experience[0].Bullets)
				assert.Nil(t, r.Education[0].Minors)
				assert.Empty(t, r.Education[0].Location)
				assert.Nil(t, r.Projects[0].Bullets)
				assert.Nil(t, r.Extracurricular[0].Achievements)
				assert.Equal(t, "This API", r.Projects[0].Description)
			},
		},
	}

	svc := &resume.Service{Blob: fixtures.ResumeBlobs()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.Get(context.Background(), tt.filter)
			require.NoError(t, err)
			require.NotNil(t, r)
			tt.check(t, r)
		})
	}
}

func TestGet_Missing(t *testing.T) {
	obs := &fetches{}
	svc := &resume.Service{Blob: blob.NewMemoryStore(), Metrics: obs}

	r, err := svc.Get(context.Background(), resume.Filter{})
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, []string{"miss"}, obs.results)
}

func TestGet_ConfiguredLocation(t *testing.T) {
	store := blob.NewMemoryStore()
	store.Put("cv/resume.yaml.json", `{"personal":{"firstName":"Grace"}}`)
	svc := &resume.Service{
		Blob:    store,
		Content: config.ContentTypeConfig{Namespace: "cv", Extension: "yaml.json"},
	}

	r, err := svc.Get(context.Background(), resume.Filter{})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Grace", r.Personal.FirstName)
}

func TestGet_Malformed(t *testing.T) {
	store := blob.NewMemoryStore()
	store.Put(fixtures.ResumeKey, `{"experience": "not a list"}`)

	_, err := (&resume.Service{Blob: store}).Get(context.Background(), resume.Filter{})
	require.ErrorIs(t, err, resume.ErrMalformed)
}

func TestGet_BlobFailure(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	obs := &fetches{}
	svc := &resume.Service{Blob: failingBlob{err: errors.New("s3 down")}, Metrics: obs, Tracer: tp.Tracer("test")}

	_, err := svc.Get(context.Background(), resume.Filter{})
	require.ErrorIs(t, err, post.ErrBlobUnavailable)

	var berr *post.BlobError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, fixtures.ResumeKey, berr.Key)
	assert.Equal(t, []string{"error"}, obs.results)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "resume.Get", spans[0].Name)
}
