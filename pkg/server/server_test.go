package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/auth"
	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/maintenance"
	"github.com/gerobakjogja/site-functions/pkg/server"
	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

type emptyStore struct{}

func (emptyStore) ListProducts(context.Context) ([]models.Product, error)   { return nil, nil }
func (emptyStore) ListBlogPosts(context.Context) ([]models.BlogPost, error) { return nil, nil }
func (emptyStore) CountProducts(context.Context) (int, error)               { return 0, nil }
func (emptyStore) CountBlogPosts(context.Context) (int, error)              { return 0, nil }

func newServer(t *testing.T, gate *maintenance.Gate) http.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=app></div>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644))

	routes := api.Routes{
		Sitemaps: &api.Sitemaps{
			Fetcher:    content.NewFetcher(emptyStore{}),
			Renderer:   sitemap.NewRenderer("https://www.gerobakjogja.com"),
			Sink:       sitemap.NopSink{},
			SitemapURL: "https://www.gerobakjogja.com/sitemap.xml",
		},
		ImageDeleter: &api.ImageDeleter{AllowList: auth.NewAllowList(nil)},
	}
	return server.NewServer(0, dir, routes, gate).Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerServesSite(t *testing.T) {
	gate := maintenance.NewGate(time.Hour)
	gate.Apply(models.Settings{})
	h := newServer(t, gate)

	rec := get(h, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *", rec.Body.String())

	rec = get(h, "/produk/gerobak-bakso")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "id=app")

	rec = get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServerMaintenance(t *testing.T) {
	gate := maintenance.NewGate(time.Hour)
	gate.Apply(models.Settings{MaintenanceMode: true, MaintenanceMessage: "Sebentar lagi kembali"})
	h := newServer(t, gate)

	rec := get(h, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sebentar lagi kembali")

	rec = get(h, "/admin")
	assert.Equal(t, http.StatusOK, rec.Code, "admin stays reachable")
	assert.Contains(t, rec.Body.String(), "id=app")

	rec = get(h, "/api/sitemap")
	assert.Equal(t, http.StatusOK, rec.Code, "the API is not gated")
	assert.Contains(t, rec.Body.String(), "<urlset")

	rec = get(h, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "availableEndpoints")
}

func TestServerMetrics(t *testing.T) {
	gate := maintenance.NewGate(time.Hour)
	gate.Apply(models.Settings{})
	h := newServer(t, gate)

	get(h, "/api/sitemap")
	rec := get(h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maintenance_mode_active")
	assert.Contains(t, rec.Body.String(), "sitemap_renders_total")
}
