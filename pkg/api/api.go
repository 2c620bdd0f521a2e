// Package api holds the HTTP handlers shared by the Lambda functions and the
// gin server. Handlers work on a transport-neutral Request/Response pair and
// are adapted to each runtime in lambda.go and gin.go.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// Request is the part of an incoming HTTP request the handlers look at.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers http.Header
	Body    []byte
}

// Response is written back by the runtime adapter.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Handler serves one endpoint independent of the transport.
type Handler func(ctx context.Context, req Request) Response

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// WithCORS adds the permissive CORS headers to every response and answers
// preflight requests with an empty 200.
func WithCORS(h Handler) Handler {
	return func(ctx context.Context, req Request) Response {
		var resp Response
		if req.Method == http.MethodOptions {
			resp = Response{StatusCode: http.StatusOK}
		} else {
			resp = h(ctx, req)
		}
		if resp.Headers == nil {
			resp.Headers = make(map[string]string, len(corsHeaders))
		}
		for k, v := range corsHeaders {
			resp.Headers[k] = v
		}
		return resp
	}
}

func jsonResponse(status int, body interface{}) Response {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("Error marshaling response body: %v", err)
		status = http.StatusInternalServerError
		payload = []byte(`{"success":false,"error":"Failed to format response"}`)
	}
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       payload,
	}
}

func methodNotAllowed(allowed ...string) Response {
	resp := jsonResponse(http.StatusMethodNotAllowed, map[string]interface{}{
		"error":          "Method not allowed",
		"allowedMethods": allowed,
	})
	resp.Headers["Allow"] = strings.Join(allowed, ", ")
	return resp
}

func (r Request) header(name string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(name)
}

func (r Request) flag(name string) bool {
	v := strings.ToLower(r.Query[name])
	return v == "true" || v == "1"
}
