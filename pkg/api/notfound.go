package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Endpoints lists the routes advertised by the catch-all handler.
var Endpoints = []string{
	"GET /api/sitemap",
	"POST /api/regenerate-sitemap",
	"POST /api/cloudinary-delete",
}

// NotFound answers any unknown /api/* path.
func NotFound(ctx context.Context, req Request) Response {
	return jsonResponse(http.StatusNotFound, map[string]interface{}{
		"success":            false,
		"error":              "Not found",
		"message":            fmt.Sprintf("API endpoint %s %s does not exist", req.Method, req.Path),
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"availableEndpoints": Endpoints,
	})
}
