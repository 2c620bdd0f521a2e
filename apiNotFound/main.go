package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gerobakjogja/site-functions/pkg/api"
)

// Bound to the API Gateway {proxy+} route under /api.
func main() {
	lambda.Start(api.Lambda(api.NotFound))
}
