// Command setMaintenance publishes the site settings record that drives the
// maintenance gate.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/cache"
	"github.com/gerobakjogja/site-functions/pkg/config"
	"github.com/gerobakjogja/site-functions/pkg/maintenance"
)

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	on := flags.Bool("on", false, "enable maintenance mode (default disables it)")
	message := flags.StringP("message", "m", "", "notice shown to visitors")
	_ = flags.Parse(os.Args[1:])

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}
	defer redisClient.Close()

	source := maintenance.NewRedisSource(redisClient.GetClient(), cfg.Server.SettingsKey, cfg.Server.SettingsChannel)
	settings := models.Settings{
		MaintenanceMode:    *on,
		MaintenanceMessage: *message,
		UpdatedAt:          time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := source.Publish(ctx, settings); err != nil {
		log.Fatalf("Failed to publish settings: %v", err)
	}
	log.Printf("Maintenance mode set to %t", *on)
}
