package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/database"
)

func newSQLStore(t *testing.T) *content.SQLStore {
	t.Helper()
	client, err := database.NewSQLiteClient(":memory:")
	require.NoError(t, err)
	t.Cleanup(client.Close)

	store := content.NewSQLStore(client)
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func strPtr(s string) *string { return &s }

func TestSQLStoreProducts(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertProducts(ctx, []models.Product{
		{ID: "b", Name: "Gerobak B", Images: []string{"http://x/1.jpg", "http://x/2.jpg"}, Price: 1500000, CreatedAt: &created, UpdatedAt: &created},
		{ID: "a", Name: "Gerobak A", Slug: "gerobak-a", Image: strPtr("http://x/a.jpg")},
	}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "a", products[0].ID, "products are listed in id order")
	assert.Equal(t, "gerobak-a", products[0].Slug)
	require.NotNil(t, products[0].Image)
	assert.Equal(t, "http://x/a.jpg", *products[0].Image)

	assert.Equal(t, []string{"http://x/1.jpg", "http://x/2.jpg"}, products[1].Images)
	assert.Empty(t, products[1].Slug)
	require.NotNil(t, products[1].UpdatedAt)
	assert.True(t, created.Equal(*products[1].UpdatedAt))

	n, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLStoreUpsertUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	require.NoError(t, store.UpsertProducts(ctx, []models.Product{{ID: "a", Name: "Old"}}))
	require.NoError(t, store.UpsertProducts(ctx, []models.Product{{ID: "a", Name: "New", Slug: "new"}}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "New", products[0].Name)
	assert.Equal(t, "new", products[0].Slug)
}

func TestSQLStoreBlogPosts(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	require.NoError(t, store.UpsertBlogPost(ctx, models.BlogPost{ID: "1", Title: "Tips", Slug: "tips", Image: strPtr("http://x/t.jpg")}))
	require.NoError(t, store.UpsertBlogPost(ctx, models.BlogPost{ID: "2", Title: "Berita", Slug: "berita"}))

	posts, err := store.ListBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "tips", posts[0].Slug)
	assert.Nil(t, posts[1].Image)
	assert.Nil(t, posts[1].CreatedAt)

	n, err := store.CountBlogPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	n, err := store.CountBlogPosts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
