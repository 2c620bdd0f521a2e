package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gerobakjogja/site-functions/pkg/metrics"
)

const (
	DefaultGoogleURL = "https://www.google.com/ping?sitemap="
	DefaultBingURL   = "https://www.bing.com/ping?sitemap="
)

// PingResult is the outcome of one search-engine ping.
type PingResult struct {
	Status int    `json:"status,omitempty"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// Result is reported verbatim in the regeneration response.
type Result struct {
	Google *PingResult `json:"google,omitempty"`
	Bing   *PingResult `json:"bing,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Pinger tells search engines that the sitemap changed. Endpoints are
// prefixes that the escaped sitemap URL is appended to.
type Pinger struct {
	client    *http.Client
	googleURL string
	bingURL   string
}

// NewPinger returns a Pinger for the given endpoints. A nil client gets a
// 10 second timeout.
func NewPinger(client *http.Client, googleURL, bingURL string) *Pinger {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Pinger{client: client, googleURL: googleURL, bingURL: bingURL}
}

// Notify pings each engine once. Failures are logged and reported in the
// result, never returned.
func (p *Pinger) Notify(ctx context.Context, sitemapURL string) Result {
	var res Result
	var failures []string

	if p.googleURL != "" {
		res.Google = p.ping(ctx, "google", p.googleURL, sitemapURL)
		if !res.Google.OK {
			failures = append(failures, "google: "+res.Google.Error)
		}
	}
	if p.bingURL != "" {
		res.Bing = p.ping(ctx, "bing", p.bingURL, sitemapURL)
		if !res.Bing.OK {
			failures = append(failures, "bing: "+res.Bing.Error)
		}
	}

	if len(failures) > 0 {
		res.Error = strings.Join(failures, "; ")
		log.Printf("Search engine submission incomplete: %s", res.Error)
	}
	return res
}

func (p *Pinger) ping(ctx context.Context, engine, endpoint, sitemapURL string) *PingResult {
	target := endpoint + url.QueryEscape(sitemapURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		metrics.PingsTotal.WithLabelValues(engine, "error").Inc()
		return &PingResult{Error: fmt.Sprintf("failed to build request: %v", err)}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.PingsTotal.WithLabelValues(engine, "error").Inc()
		return &PingResult{Error: err.Error()}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	result := &PingResult{Status: resp.StatusCode, OK: resp.StatusCode < http.StatusBadRequest}
	if !result.OK {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		metrics.PingsTotal.WithLabelValues(engine, "rejected").Inc()
	} else {
		metrics.PingsTotal.WithLabelValues(engine, "ok").Inc()
	}
	log.Printf("Pinged %s with %s: %d", engine, sitemapURL, resp.StatusCode)
	return result
}
