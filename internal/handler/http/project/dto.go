// Package project provides HTTP handlers for the project catalog.
package project

import (
	"time"

	"content-api/internal/domain/entity"
)

// URLDTO is a labelled project link.
type URLDTO struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DTO is one project as served by both project endpoints.
type DTO struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Stage              string    `json:"stage"`
	OpenToContributors bool      `json:"open_to_contributors"`
	ReadmeURL          string    `json:"readme_url"`
	Tags               []string  `json:"tags,omitempty"`
	URLs               []URLDTO  `json:"urls,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ListResponse is the body of GET /v1/projects.
type ListResponse struct {
	Projects []DTO `json:"projects"`
}

func toDTO(p *entity.Project) DTO {
	var urls []URLDTO
	for _, u := range p.URLs {
		urls = append(urls, URLDTO{Label: u.Label, URL: u.URL})
	}
	return DTO{
		ID:                 p.ID,
		Slug:               p.Slug,
		Name:               p.Name,
		Description:        p.Description,
		Stage:              p.Stage,
		OpenToContributors: p.OpenToContributors,
		ReadmeURL:          p.ReadmeURL,
		Tags:               p.Tags,
		URLs:               urls,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
