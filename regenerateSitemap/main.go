package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/app"
)

var (
	deps     *app.Deps
	sitemaps *api.Sitemaps
)

func init() {
	var err error
	deps, err = app.Open(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	// Lambda's filesystem is read-only outside /tmp, so SITEMAP_OUTPUT is
	// normally "none" here and the file sink is used by the server target.
	sitemaps, err = deps.Sitemaps()
	if err != nil {
		log.Fatalf("Failed to initialize sitemap handler: %v", err)
	}
}

func main() {
	defer deps.Close()
	lambda.Start(api.Lambda(sitemaps.Regenerate))
}
