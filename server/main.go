package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/app"
	"github.com/gerobakjogja/site-functions/pkg/maintenance"
	"github.com/gerobakjogja/site-functions/pkg/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := app.Open(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()
	cfg := deps.Config

	sitemaps, err := deps.Sitemaps()
	if err != nil {
		log.Fatalf("Failed to initialize sitemap handler: %v", err)
	}

	gate := maintenance.NewGate(cfg.Server.MaintenanceTimeout)
	if deps.Redis != nil {
		source := maintenance.NewRedisSource(deps.Redis.GetClient(), cfg.Server.SettingsKey, cfg.Server.SettingsChannel)
		go func() {
			if err := source.Watch(ctx, gate.Apply); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Settings subscription ended: %v", err)
			}
		}()
	} else {
		log.Println("No Redis configured; maintenance gate resolves through its timeout.")
	}

	srv := server.NewServer(cfg.Server.Port, cfg.Server.StaticDir, api.Routes{
		Sitemaps:     sitemaps,
		ImageDeleter: app.ImageDeleter(cfg),
	}, gate)

	go func() {
		log.Printf("Starting server on port %d", cfg.Server.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	waitForShutdown(cancel, srv)
}

func waitForShutdown(cancel context.CancelFunc, srv *server.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
