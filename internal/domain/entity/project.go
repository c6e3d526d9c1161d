package entity

import "time"

// ProjectURL is a labelled link shown alongside a project.
type ProjectURL struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project is an entry of the project catalog.
type Project struct {
	ID                 string
	Slug               string
	Name               string
	Description        string
	Stage              string
	OpenToContributors bool
	ReadmeURL          string
	Tags               []string
	URLs               []ProjectURL
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
