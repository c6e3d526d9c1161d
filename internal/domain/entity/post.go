// Package entity defines the core domain entities and validation logic for the content API.
// It contains posts, projects and tags, along with their validation rules and domain errors.
package entity

import "time"

// Post is a published content item. Metadata lives in the relational store;
// the body lives in the object store and is only attached by a full fetch.
type Post struct {
	ContentID   string
	Slug        string
	Title       string
	Summary     string
	PublishedAt time.Time
	UpdatedAt   time.Time
	CreatedAt   time.Time
	Tags        []string
	ExternalURL *string

	// Content is nil for listing rows and when the blob is absent.
	Content *string
	// ReadTimeMinutes is derived from Content; zero when Content is nil.
	ReadTimeMinutes int
}
