// Command generateSitemap renders the sitemap once, for build pipelines that
// ship a static public/sitemap.xml.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gerobakjogja/site-functions/pkg/app"
	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/notify"
	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	out := flags.StringP("out", "o", "public/sitemap.xml", `output file, "-" for stdout`)
	baseURL := flags.String("base-url", "", "override SITE_BASE_URL")
	ping := flags.Bool("ping", false, "notify search engines after writing")
	_ = flags.Parse(os.Args[1:])

	ctx := context.Background()
	deps, err := app.Open(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()
	cfg := deps.Config
	if *baseURL != "" {
		cfg.BaseURL = strings.TrimRight(*baseURL, "/")
	}

	snap := content.NewFetcher(deps.Store).Fetch(ctx, true)
	doc, err := sitemap.NewRenderer(cfg.BaseURL).Render(sitemap.StaticRoutes, snap.Products, snap.BlogPosts)
	if err != nil {
		log.Fatalf("Failed to render sitemap: %v", err)
	}

	if *out == "-" {
		if _, err := os.Stdout.Write(doc); err != nil {
			log.Fatalf("Failed to write sitemap: %v", err)
		}
	} else if err := (sitemap.FileSink{Path: *out}).Write(ctx, doc); err != nil {
		log.Fatalf("Failed to write sitemap: %v", err)
	}

	if *ping {
		res := notify.NewPinger(&http.Client{Timeout: cfg.Sitemap.PingTimeout}, cfg.Sitemap.PingGoogle, cfg.Sitemap.PingBing).Notify(ctx, cfg.SitemapURL())
		if res.Error != "" {
			log.Printf("Search engine submission failed: %s", res.Error)
		}
	}
}
