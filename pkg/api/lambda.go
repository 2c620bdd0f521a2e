package api

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler is the function signature lambda.Start expects for API
// Gateway proxy events.
type LambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Lambda adapts a Handler to an API Gateway proxy integration. CORS headers
// are added here because API Gateway passes responses through untouched.
func Lambda(h Handler) LambdaHandler {
	h = WithCORS(h)
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		log.Printf("Received request: %s %s", request.HTTPMethod, request.Path)

		body := []byte(request.Body)
		if request.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(request.Body)
			if err != nil {
				return events.APIGatewayProxyResponse{
					StatusCode: http.StatusBadRequest,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       `{"success":false,"error":"Invalid base64 body"}`,
				}, nil
			}
			body = decoded
		}

		headers := make(http.Header, len(request.Headers))
		for k, v := range request.Headers {
			headers.Set(k, v)
		}

		query := request.QueryStringParameters
		if query == nil {
			query = map[string]string{}
		}

		resp := h(ctx, Request{
			Method:  request.HTTPMethod,
			Path:    request.Path,
			Query:   query,
			Headers: headers,
			Body:    body,
		})
		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       string(resp.Body),
		}, nil
	}
}
