package content

import (
	"context"
	"log"

	"github.com/gerobakjogja/site-functions/models"
)

// Snapshot is the content a sitemap is rendered from.
type Snapshot struct {
	Products  []models.Product
	BlogPosts []models.BlogPost
}

// Stats are the collection sizes reported after a regeneration.
type Stats struct {
	Products  int `json:"products"`
	BlogPosts int `json:"blogPosts"`
}

// Uncacheable is implemented by stores with a cache that can be bypassed.
type Uncacheable interface {
	Uncached() Store
}

// Fetcher reads content for the sitemap. Read failures degrade to empty
// collections instead of failing the caller.
type Fetcher struct {
	store Store
}

// NewFetcher returns a fetcher reading from store.
func NewFetcher(store Store) *Fetcher {
	return &Fetcher{store: store}
}

// Fetch reads both collections. With fresh set, any cache in front of the
// store is skipped.
func (f *Fetcher) Fetch(ctx context.Context, fresh bool) Snapshot {
	store := f.source(fresh)

	var snap Snapshot
	products, err := store.ListProducts(ctx)
	if err != nil {
		log.Printf("Error fetching products, rendering without them: %v", err)
	} else {
		snap.Products = products
	}

	posts, err := store.ListBlogPosts(ctx)
	if err != nil {
		log.Printf("Error fetching blog posts, rendering without them: %v", err)
	} else {
		snap.BlogPosts = posts
	}

	log.Printf("Fetched %d products and %d blog posts.", len(snap.Products), len(snap.BlogPosts))
	return snap
}

// Count runs count-only queries. A failed count falls back to the size of
// the snapshot that was rendered.
func (f *Fetcher) Count(ctx context.Context, rendered Snapshot) Stats {
	stats := Stats{Products: len(rendered.Products), BlogPosts: len(rendered.BlogPosts)}

	if n, err := f.store.CountProducts(ctx); err != nil {
		log.Printf("Error counting products: %v", err)
	} else {
		stats.Products = n
	}

	if n, err := f.store.CountBlogPosts(ctx); err != nil {
		log.Printf("Error counting blog posts: %v", err)
	} else {
		stats.BlogPosts = n
	}
	return stats
}

func (f *Fetcher) source(fresh bool) Store {
	if fresh {
		if u, ok := f.store.(Uncacheable); ok {
			return u.Uncached()
		}
	}
	return f.store
}
