package models

import (
	"time"
)

// Product represents a catalog product as read from the content store
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug,omitempty"`
	Images    []string   `json:"images,omitempty"`
	Image     *string    `json:"image,omitempty"` // Legacy single-image field
	Price     float64    `json:"price"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PathSegment returns the slug, or the ID for products saved without one.
func (p Product) PathSegment() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID
}

// PrimaryImage returns the first image URL, preferring the images list.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img != "" {
			return img
		}
	}
	if p.Image != nil {
		return *p.Image
	}
	return ""
}

// ProductCSV represents a product as read from an import CSV file
type ProductCSV struct {
	ID    string  `csv:"id"` // Optional: generated when empty
	Name  string  `csv:"name"`
	Slug  string  `csv:"slug"`
	Image string  `csv:"image"`
	Price float64 `csv:"price"`
}
