package media

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured means no image host credentials were provided.
var ErrNotConfigured = errors.New("image hosting credentials are not configured")

// Deleter removes hosted image assets.
type Deleter interface {
	Delete(ctx context.Context, publicID string) (string, error)
}

// CloudinaryDeleter deletes assets through the Cloudinary upload API.
type CloudinaryDeleter struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryDeleter returns ErrNotConfigured when any credential is empty.
func NewCloudinaryDeleter(cloudName, apiKey, apiSecret string) (*CloudinaryDeleter, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryDeleter{cld: cld}, nil
}

// Delete destroys the asset and returns Cloudinary's result string
// ("ok" or "not found").
func (d *CloudinaryDeleter) Delete(ctx context.Context, publicID string) (string, error) {
	resp, err := d.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return "", fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to delete %s: %s", publicID, resp.Error.Message)
	}
	log.Printf("Deleted image %s: %s", publicID, resp.Result)
	return resp.Result, nil
}
