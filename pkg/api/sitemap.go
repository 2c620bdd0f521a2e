package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/metrics"
	"github.com/gerobakjogja/site-functions/pkg/notify"
	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

// Notifier reports a new sitemap to search engines.
type Notifier interface {
	Notify(ctx context.Context, sitemapURL string) notify.Result
}

// Sitemaps serves the on-demand and regeneration endpoints from one
// fetch/render pipeline.
type Sitemaps struct {
	Fetcher    *content.Fetcher
	Renderer   *sitemap.Renderer
	Sink       sitemap.Sink
	Notifier   Notifier
	SitemapURL string
	Production bool
	Now        func() time.Time
}

func (s *Sitemaps) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Sitemaps) build(ctx context.Context, fresh bool) ([]byte, content.Snapshot, error) {
	snap := s.Fetcher.Fetch(ctx, fresh)
	doc, err := s.Renderer.Render(sitemap.StaticRoutes, snap.Products, snap.BlogPosts)
	if err != nil {
		return nil, snap, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return doc, snap, nil
}

// Get renders the sitemap for GET /api/sitemap. Errors, panics included, are
// reported as an XML <error> document so the content type never changes.
func (s *Sitemaps) Get(ctx context.Context, req Request) (resp Response) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return methodNotAllowed(http.MethodGet, http.MethodHead)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic while generating sitemap: %v\n%s", r, debug.Stack())
			resp = getFailure(fmt.Errorf("%v", r))
		}
	}()

	fresh := req.flag("fresh")
	doc, _, err := s.build(ctx, fresh)
	if err != nil {
		log.Printf("Error generating sitemap: %v", err)
		return getFailure(err)
	}
	metrics.SitemapRenders.WithLabelValues("get", "ok").Inc()

	headers := map[string]string{
		"Content-Type":   "application/xml; charset=utf-8",
		"X-Generated-At": s.now().UTC().Format(time.RFC3339),
		"X-Cache-Buster": uuid.New().String(),
	}
	if fresh {
		headers["Cache-Control"] = "no-store, no-cache, must-revalidate, max-age=0"
		headers["Pragma"] = "no-cache"
		headers["Expires"] = "0"
	} else {
		headers["Cache-Control"] = "public, max-age=60, s-maxage=60"
	}

	if req.Method == http.MethodHead {
		doc = nil
	}
	return Response{StatusCode: http.StatusOK, Headers: headers, Body: doc}
}

type regenerateStats struct {
	Products  int `json:"products"`
	BlogPosts int `json:"blogPosts"`
	TotalURLs int `json:"totalUrls"`
}

type regenerateResponse struct {
	Success                bool            `json:"success"`
	Message                string          `json:"message"`
	Timestamp              string          `json:"timestamp"`
	SitemapURL             string          `json:"sitemapUrl"`
	SearchEngineSubmission notify.Result   `json:"searchEngineSubmission"`
	Stats                  regenerateStats `json:"stats"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

// Regenerate handles POST /api/regenerate-sitemap: render from fresh
// content, persist best-effort, ping search engines and report stats.
func (s *Sitemaps) Regenerate(ctx context.Context, req Request) (resp Response) {
	if req.Method != http.MethodPost {
		return methodNotAllowed(http.MethodPost)
	}

	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			log.Printf("Panic during sitemap regeneration: %v\n%s", r, stack)
			resp = s.failure(fmt.Errorf("%v", r), stack)
		}
	}()

	doc, snap, err := s.build(ctx, true)
	if err != nil {
		log.Printf("Error regenerating sitemap: %v", err)
		return s.failure(err, "")
	}
	metrics.SitemapRenders.WithLabelValues("regenerate", "ok").Inc()

	if s.Sink != nil {
		if err := s.Sink.Write(ctx, doc); err != nil {
			log.Printf("Could not persist sitemap, continuing: %v", err)
		}
	}

	var submission notify.Result
	if s.Notifier != nil {
		submission = s.Notifier.Notify(ctx, s.SitemapURL)
	}

	counts := s.Fetcher.Count(ctx, snap)
	now := s.now().UTC()

	log.Printf("Sitemap regenerated: %d products, %d blog posts", counts.Products, counts.BlogPosts)
	return jsonResponse(http.StatusOK, regenerateResponse{
		Success:                true,
		Message:                "Sitemap regenerated successfully",
		Timestamp:              now.Format(time.RFC3339),
		SitemapURL:             s.SitemapURL,
		SearchEngineSubmission: submission,
		Stats: regenerateStats{
			Products:  counts.Products,
			BlogPosts: counts.BlogPosts,
			TotalURLs: sitemap.URLCount(sitemap.StaticRoutes, snap.Products, snap.BlogPosts),
		},
	})
}

func (s *Sitemaps) failure(err error, stack string) Response {
	metrics.SitemapRenders.WithLabelValues("regenerate", "error").Inc()
	body := failureResponse{Success: false, Error: err.Error()}
	if !s.Production {
		if stack == "" {
			stack = fmt.Sprintf("%+v", err)
		}
		body.Stack = stack
	}
	return jsonResponse(http.StatusInternalServerError, body)
}

func getFailure(err error) Response {
	metrics.SitemapRenders.WithLabelValues("get", "error").Inc()
	return Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/xml; charset=utf-8", "Cache-Control": "no-store"},
		Body:       xmlError(err.Error()),
	}
}

func xmlError(message string) []byte {
	return []byte(xml.Header +
		"<error><message>" + sitemap.Escape(message) + "</message></error>\n")
}
