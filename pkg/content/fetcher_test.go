package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/content"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockStore) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.BlogPost)
	return posts, args.Error(1)
}

func (m *MockStore) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CountBlogPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type uncacheableStore struct {
	*MockStore
	backing content.Store
}

func (s uncacheableStore) Uncached() content.Store { return s.backing }

func TestFetcherDegradesOnFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("ListProducts", ctx).Return(nil, errors.New("connection reset"))
	store.On("ListBlogPosts", ctx).Return([]models.BlogPost{{ID: "1", Slug: "one"}}, nil)

	snap := content.NewFetcher(store).Fetch(ctx, false)

	assert.Empty(t, snap.Products)
	assert.Len(t, snap.BlogPosts, 1)
	store.AssertExpectations(t)
}

func TestFetcherCountFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("CountProducts", ctx).Return(0, errors.New("timeout"))
	store.On("CountBlogPosts", ctx).Return(7, nil)

	snap := content.Snapshot{Products: make([]models.Product, 3)}
	stats := content.NewFetcher(store).Count(ctx, snap)

	assert.Equal(t, content.Stats{Products: 3, BlogPosts: 7}, stats)
}

func TestFetcherFreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	cachedSide := new(MockStore)
	backing := new(MockStore)
	backing.On("ListProducts", ctx).Return([]models.Product{{ID: "p"}}, nil)
	backing.On("ListBlogPosts", ctx).Return(nil, nil)

	f := content.NewFetcher(uncacheableStore{MockStore: cachedSide, backing: backing})
	snap := f.Fetch(ctx, true)

	assert.Len(t, snap.Products, 1)
	backing.AssertExpectations(t)
	cachedSide.AssertNotCalled(t, "ListProducts", mock.Anything)
}
