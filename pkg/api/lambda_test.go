package api_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerobakjogja/site-functions/pkg/api"
)

func TestLambdaAdapter(t *testing.T) {
	var got api.Request
	h := api.Lambda(func(_ context.Context, req api.Request) api.Response {
		got = req
		return api.Response{StatusCode: http.StatusAccepted, Body: []byte("done")}
	})

	resp, err := h(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/api/cloudinary-delete",
		Headers:               map[string]string{"authorization": "Bearer abc"},
		QueryStringParameters: map[string]string{"fresh": "true"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"publicId":"x"}`)),
		IsBase64Encoded:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "done", resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "Bearer abc", got.Headers.Get("Authorization"))
	assert.Equal(t, `{"publicId":"x"}`, string(got.Body))
	assert.Equal(t, "true", got.Query["fresh"])
}

func TestLambdaAdapterPreflight(t *testing.T) {
	called := false
	h := api.Lambda(func(context.Context, api.Request) api.Response {
		called = true
		return api.Response{StatusCode: http.StatusTeapot}
	})

	resp, err := h(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.False(t, called)
}

func TestNotFound(t *testing.T) {
	resp := api.NotFound(context.Background(), api.Request{Method: http.MethodGet, Path: "/api/unknown"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Success            bool     `json:"success"`
		Error              string   `json:"error"`
		Message            string   `json:"message"`
		Timestamp          string   `json:"timestamp"`
		AvailableEndpoints []string `json:"availableEndpoints"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "/api/unknown")
	assert.NotEmpty(t, body.Timestamp)
	assert.Equal(t, api.Endpoints, body.AvailableEndpoints)
}

func TestLambdaSitemapPanicReturns500(t *testing.T) {
	s := newSitemaps(&stubStore{panicking: true}, nil, nil)

	resp, err := api.Lambda(s.Get)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/sitemap",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "<error>")
}
