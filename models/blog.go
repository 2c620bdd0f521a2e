package models

import "time"

// BlogPost represents an article on the site's blog
type BlogPost struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Image     *string    `json:"image,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PathSegment returns the slug, or the ID when the post has no slug.
func (b BlogPost) PathSegment() string {
	if b.Slug != "" {
		return b.Slug
	}
	return b.ID
}
