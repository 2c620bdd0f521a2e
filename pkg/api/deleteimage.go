package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gerobakjogja/site-functions/pkg/auth"
	"github.com/gerobakjogja/site-functions/pkg/media"
	"github.com/gerobakjogja/site-functions/pkg/metrics"
)

// ImageDeleter handles POST /api/cloudinary-delete for allow-listed admins.
type ImageDeleter struct {
	Verifier  auth.Verifier
	AllowList auth.AllowList
	// Deleter is nil when the image host is not configured.
	Deleter media.Deleter
}

type deleteImageRequest struct {
	PublicID string `json:"publicId"`
}

type deleteImageResponse struct {
	Success  bool   `json:"success"`
	Result   string `json:"result"`
	PublicID string `json:"publicId"`
}

// Delete verifies the caller, checks the allow-list and removes the asset
// named by publicId in the JSON body.
func (h *ImageDeleter) Delete(ctx context.Context, req Request) Response {
	if req.Method != http.MethodPost {
		return methodNotAllowed(http.MethodPost)
	}

	token, err := auth.BearerToken(req.header("Authorization"))
	if err != nil {
		metrics.ImageDeletions.WithLabelValues("unauthorized").Inc()
		return deleteError(http.StatusUnauthorized, "Unauthorized", err.Error())
	}

	identity, err := h.Verifier.Verify(ctx, token)
	if err != nil {
		metrics.ImageDeletions.WithLabelValues("unauthorized").Inc()
		if errors.Is(err, auth.ErrInvalidToken) {
			return deleteError(http.StatusUnauthorized, "Unauthorized", auth.ErrInvalidToken.Error())
		}
		log.Printf("Identity provider unavailable: %v", err)
		return deleteError(http.StatusInternalServerError, "Authentication service unavailable", err.Error())
	}

	if !h.AllowList.Allows(identity.Email) {
		log.Printf("Rejected image deletion by %q (uid %s)", identity.Email, identity.UID)
		metrics.ImageDeletions.WithLabelValues("forbidden").Inc()
		return deleteError(http.StatusForbidden, "Forbidden", auth.ErrNotAllowed.Error())
	}

	var body deleteImageRequest
	if err := json.Unmarshal(req.Body, &body); err != nil || strings.TrimSpace(body.PublicID) == "" {
		metrics.ImageDeletions.WithLabelValues("bad_request").Inc()
		return deleteError(http.StatusBadRequest, "Bad request", "publicId is required")
	}
	publicID := strings.TrimSpace(body.PublicID)

	if h.Deleter == nil {
		metrics.ImageDeletions.WithLabelValues("error").Inc()
		return deleteError(http.StatusInternalServerError, "Server misconfigured", media.ErrNotConfigured.Error())
	}

	result, err := h.Deleter.Delete(ctx, publicID)
	if err != nil {
		log.Printf("Error deleting image %s: %v", publicID, err)
		metrics.ImageDeletions.WithLabelValues("error").Inc()
		return deleteError(http.StatusInternalServerError, "Failed to delete image", err.Error())
	}

	log.Printf("Image %s deleted by %s", publicID, identity.Email)
	metrics.ImageDeletions.WithLabelValues("ok").Inc()
	return jsonResponse(http.StatusOK, deleteImageResponse{Success: true, Result: result, PublicID: publicID})
}

func deleteError(status int, title, message string) Response {
	return jsonResponse(status, map[string]interface{}{
		"success": false,
		"error":   title,
		"message": message,
	})
}
