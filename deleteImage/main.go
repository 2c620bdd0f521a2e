package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/app"
	"github.com/gerobakjogja/site-functions/pkg/config"
)

var deleter *api.ImageDeleter

func init() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	deleter = app.ImageDeleter(cfg)
}

func main() {
	lambda.Start(api.Lambda(deleter.Delete))
}
