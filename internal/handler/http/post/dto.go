// Package post provides HTTP handlers for the post listing, post detail and tag endpoints.
package post

import (
	"time"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
)

// ListItemDTO is one row of GET /v1/posts. Bodies are never included.
type ListItemDTO struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Tags        []string  `json:"tags,omitempty"`
	ExternalURL *string   `json:"external_url,omitempty"`
}

// ListResponse is the body of GET /v1/posts.
type ListResponse struct {
	Posts      []ListItemDTO       `json:"posts"`
	Pagination pagination.Metadata `json:"pagination"`
}

// DTO is the body of GET /v1/posts/{slug}.
type DTO struct {
	ContentID       string    `json:"content_id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary,omitempty"`
	Content         *string   `json:"content,omitempty"`
	ReadTimeMinutes int       `json:"read_time_minutes,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedAt       time.Time `json:"created_at"`
	Tags            []string  `json:"tags,omitempty"`
	ExternalURL     *string   `json:"external_url,omitempty"`
}

// TagDTO is one element of GET /v1/tags.
type TagDTO struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

func toListItem(p *entity.Post) ListItemDTO {
	return ListItemDTO{
		Slug:        p.Slug,
		Title:       p.Title,
		Summary:     p.Summary,
		PublishedAt: p.PublishedAt,
		Tags:        p.Tags,
		ExternalURL: p.ExternalURL,
	}
}

func toDTO(p *entity.Post) DTO {
	return DTO{
		ContentID:       p.ContentID,
		Slug:            p.Slug,
		Title:           p.Title,
		Summary:         p.Summary,
		Content:         p.Content,
		ReadTimeMinutes: p.ReadTimeMinutes,
		PublishedAt:     p.PublishedAt,
		UpdatedAt:       p.UpdatedAt,
		CreatedAt:       p.CreatedAt,
		Tags:            p.Tags,
		ExternalURL:     p.ExternalURL,
	}
}
