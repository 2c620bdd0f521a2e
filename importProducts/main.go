package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gerobakjogja/site-functions/pkg/app"
	"github.com/gerobakjogja/site-functions/pkg/content"
	"github.com/gerobakjogja/site-functions/pkg/importer"
)

var deps *app.Deps

func init() {
	var err error
	deps, err = app.Open(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
}

// ImportEvent carries either S3 records or an inline CSV payload
type ImportEvent struct {
	Records []events.S3EventRecord `json:"Records,omitempty"`
	CSVData string                 `json:"csv_data,omitempty"`
}

func handler(ctx context.Context, event ImportEvent) error {
	var csvContent []byte

	switch {
	case len(event.Records) > 0:
		s3Record := event.Records[0].S3
		log.Printf("Processing S3 event for bucket: %s, key: %s", s3Record.Bucket.Name, s3Record.Object.Key)

		if deps.Config.AppEnv != "local" {
			return fmt.Errorf("S3 imports are only simulated in the local environment")
		}
		data, err := os.ReadFile("products.csv")
		if err != nil {
			return fmt.Errorf("failed to read local products.csv for S3 simulation: %w", err)
		}
		csvContent = data
	case event.CSVData != "":
		log.Println("Processing direct CSV data payload.")
		csvContent = []byte(event.CSVData)
	default:
		return fmt.Errorf("no S3 event record or direct CSV data found in the payload")
	}

	products, err := importer.ParseProducts(csvContent)
	if err != nil {
		return err
	}

	if err := deps.SQLStore.UpsertProducts(ctx, products); err != nil {
		return err
	}

	if cached, ok := deps.Store.(*content.CachedStore); ok {
		if err := cached.Invalidate(ctx); err != nil {
			log.Printf("Error invalidating content cache: %v", err)
		}
	}

	log.Printf("Imported %d products.", len(products))
	return nil
}

func main() {
	defer deps.Close()
	lambda.Start(handler)
}
