// Package app wires configuration into the clients and handlers used by the
// Lambda functions, the server and the CLIs.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/auth"
	"github.com/gerobakjogja/site-functions/pkg/cache"
	"github.com/gerobakjogja/site-functions/pkg/config"
	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/database"
	"github.com/gerobakjogja/site-functions/pkg/media"
	"github.com/gerobakjogja/site-functions/pkg/notify"
	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

// Deps holds the long-lived clients of one process.
type Deps struct {
	Config   *config.Config
	DB       *database.DBClient
	SQLStore *content.SQLStore
	Redis    *cache.RedisClient // nil when REDIS_ADDR is unset
	Store    content.Store
}

// Open loads configuration and connects to the database and, when
// configured, Redis. A Redis failure only disables the content cache.
func Open(ctx context.Context) (*Deps, error) {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize DB client: %w", err)
	}

	sqlStore := content.NewSQLStore(db)
	if db.Driver() == database.DriverSQLite {
		if err := sqlStore.Initialize(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	deps := &Deps{Config: cfg, DB: db, SQLStore: sqlStore, Store: sqlStore}

	if cfg.Redis.Addr == "" {
		log.Println("REDIS_ADDR not set, content cache disabled.")
		return deps, nil
	}
	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr)
	if err != nil {
		log.Printf("Failed to initialize Redis client, content cache disabled: %v", err)
		return deps, nil
	}
	deps.Redis = redisClient
	deps.Store = content.NewCachedStore(sqlStore, redisClient.GetClient(), cfg.Redis.CacheTTL)
	return deps, nil
}

// Close releases the Redis and database connections.
func (d *Deps) Close() {
	d.Redis.Close()
	d.DB.Close()
}

// Sitemaps builds the sitemap handlers for this deployment.
func (d *Deps) Sitemaps() (*api.Sitemaps, error) {
	cfg := d.Config
	sink, err := sitemap.NewSink(cfg.Sitemap.Output, cfg.Sitemap.OutputPath)
	if err != nil {
		return nil, err
	}

	return &api.Sitemaps{
		Fetcher:  content.NewFetcher(d.Store),
		Renderer: sitemap.NewRenderer(cfg.BaseURL),
		Sink:     sink,
		Notifier: notify.NewPinger(
			&http.Client{Timeout: cfg.Sitemap.PingTimeout},
			cfg.Sitemap.PingGoogle,
			cfg.Sitemap.PingBing,
		),
		SitemapURL: cfg.SitemapURL(),
		Production: cfg.IsProduction(),
	}, nil
}

// ImageDeleter builds the deletion handler. Missing Cloudinary credentials
// leave the deleter unset so requests fail with a configuration error.
func ImageDeleter(cfg *config.Config) *api.ImageDeleter {
	h := &api.ImageDeleter{
		Verifier:  auth.NewFirebaseVerifier(cfg.Firebase.ProjectID, cfg.Firebase.CredentialsJSON),
		AllowList: auth.NewAllowList(cfg.AdminEmailList()),
	}

	deleter, err := media.NewCloudinaryDeleter(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Printf("Image deletion unavailable: %v", err)
		return h
	}
	h.Deleter = deleter
	return h
}
