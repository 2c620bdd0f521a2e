package content_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/content"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCachedStoreReadsThrough(t *testing.T) {
	ctx := context.Background()
	backing := newSQLStore(t)
	_, client := newRedis(t)
	cached := content.NewCachedStore(backing, client, 0)

	require.NoError(t, backing.UpsertProducts(ctx, []models.Product{
		{ID: "b", Name: "B"},
		{ID: "a", Name: "A", Slug: "a"},
	}))

	first, err := cached.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// A change in the backing store is not visible until the cache is dropped
	require.NoError(t, backing.UpsertProducts(ctx, []models.Product{{ID: "c", Name: "C"}}))
	second, err := cached.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(second), "cached order matches store order")

	fresh, err := cached.Uncached().ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)

	require.NoError(t, cached.Invalidate(ctx))
	third, err := cached.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(third))

	n, err := cached.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCachedStoreEvictedRecordFallsBack(t *testing.T) {
	ctx := context.Background()
	backing := newSQLStore(t)
	mr, client := newRedis(t)
	cached := content.NewCachedStore(backing, client, 0)

	require.NoError(t, backing.UpsertBlogPost(ctx, models.BlogPost{ID: "1", Title: "One", Slug: "one"}))
	require.NoError(t, backing.UpsertBlogPost(ctx, models.BlogPost{ID: "2", Title: "Two", Slug: "two"}))

	_, err := cached.ListBlogPosts(ctx)
	require.NoError(t, err)

	mr.Del("content:blog_post:2")

	posts, err := cached.ListBlogPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2, "a partially evicted collection is reloaded from the store")
}

func TestCachedStoreRedisDown(t *testing.T) {
	ctx := context.Background()
	backing := newSQLStore(t)
	mr, client := newRedis(t)
	cached := content.NewCachedStore(backing, client, 0)

	require.NoError(t, backing.UpsertProducts(ctx, []models.Product{{ID: "a", Name: "A"}}))
	mr.Close()

	products, err := cached.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
