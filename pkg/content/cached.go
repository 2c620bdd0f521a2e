package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/gerobakjogja/site-functions/models"
)

// ErrCacheMiss is returned when a collection is absent or incomplete in Redis.
var ErrCacheMiss = errors.New("content cache miss")

const (
	productIDsKey   = "content:products:ids"
	productKeyFmt   = "content:product:%s"
	blogPostIDsKey  = "content:blog_posts:ids"
	blogPostKeyFmt  = "content:blog_post:%s"
	defaultCacheTTL = 5 * time.Minute
)

// CachedStore is a read-through Redis cache in front of another Store. Each
// collection is kept as an ordered ID list plus one JSON key per record.
type CachedStore struct {
	backing Store
	client  *redis.Client
	ttl     time.Duration
}

// NewCachedStore caches backing in Redis. A non-positive ttl uses five minutes.
func NewCachedStore(backing Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{backing: backing, client: client, ttl: ttl}
}

// Uncached returns the backing store, for callers that need fresh data.
func (c *CachedStore) Uncached() Store {
	return c.backing
}

// ListProducts reads products from Redis, reloading them from the backing
// store on a miss.
func (c *CachedStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := readCollection[models.Product](ctx, c.client, productIDsKey, productKeyFmt)
	if err == nil {
		log.Printf("Retrieved %d products from Redis cache.", len(products))
		return products, nil
	}
	log.Printf("Product cache unavailable (%v), falling back to store.", err)

	products, err = c.backing.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	if err := writeCollection(ctx, c.client, c.ttl, productIDsKey, productKeyFmt, ids, products); err != nil {
		log.Printf("Failed to populate product cache: %v", err)
	}
	return products, nil
}

// ListBlogPosts reads blog posts from Redis, reloading them from the backing
// store on a miss.
func (c *CachedStore) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := readCollection[models.BlogPost](ctx, c.client, blogPostIDsKey, blogPostKeyFmt)
	if err == nil {
		log.Printf("Retrieved %d blog posts from Redis cache.", len(posts))
		return posts, nil
	}
	log.Printf("Blog post cache unavailable (%v), falling back to store.", err)

	posts, err = c.backing.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, b := range posts {
		ids[i] = b.ID
	}
	if err := writeCollection(ctx, c.client, c.ttl, blogPostIDsKey, blogPostKeyFmt, ids, posts); err != nil {
		log.Printf("Failed to populate blog post cache: %v", err)
	}
	return posts, nil
}

// CountProducts delegates to the backing store. Counts are never cached.
func (c *CachedStore) CountProducts(ctx context.Context) (int, error) {
	return c.backing.CountProducts(ctx)
}

// CountBlogPosts delegates to the backing store.
func (c *CachedStore) CountBlogPosts(ctx context.Context) (int, error) {
	return c.backing.CountBlogPosts(ctx)
}

// Invalidate drops both cached collections.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productIDsKey, blogPostIDsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate content cache: %w", err)
	}
	return nil
}

func readCollection[T any](ctx context.Context, client *redis.Client, idsKey, keyFmt string) ([]T, error) {
	ids, err := client.LRange(ctx, idsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from Redis: %w", idsKey, err)
	}
	if len(ids) == 0 {
		return nil, ErrCacheMiss
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(keyFmt, id)
	}

	results, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to MGET %s from Redis: %w", idsKey, err)
	}

	items := make([]T, 0, len(results))
	for i, res := range results {
		// An evicted record would silently drop a URL, so treat it as a miss
		raw, ok := res.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %s", ErrCacheMiss, keys[i])
		}
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("%w: key %s: %v", ErrCacheMiss, keys[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}

func writeCollection[T any](ctx context.Context, client *redis.Client, ttl time.Duration, idsKey, keyFmt string, ids []string, items []T) error {
	pipe := client.TxPipeline()
	pipe.Del(ctx, idsKey)

	members := make([]interface{}, 0, len(items))
	for i, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			log.Printf("Failed to marshal %s for cache population: %v", ids[i], err)
			continue
		}
		pipe.Set(ctx, fmt.Sprintf(keyFmt, ids[i]), payload, ttl)
		members = append(members, ids[i])
	}
	if len(members) > 0 {
		pipe.RPush(ctx, idsKey, members...)
		pipe.Expire(ctx, idsKey, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for %s: %w", idsKey, err)
	}
	log.Printf("Cache populated with %d entries under %s.", len(members), idsKey)
	return nil
}
