package clients

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryClientWrapper provides an interface for the blob-store
// operations this service needs, mockable in tests.
type CloudinaryClientWrapper interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (secureURL, publicID string, err error)
	DestroyImage(ctx context.Context, publicID string) error
}

// CloudinaryClient implements CloudinaryClientWrapper using the Cloudinary SDK.
type CloudinaryClient struct {
	Client *cloudinary.Cloudinary
}

// NewCloudinaryClient initializes the SDK client from a cloudinary:// URL
// (CLOUDINARY_URL style credentials).
func NewCloudinaryClient(url string) (*CloudinaryClient, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	return &CloudinaryClient{Client: cld}, nil
}

// UploadImage uploads a file into the given folder and returns its delivery
// URL and public ID. The public ID is what callers must keep to delete the
// asset later.
func (c *CloudinaryClient) UploadImage(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	resp, err := c.Client.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, resp.PublicID, nil
}

// DestroyImage removes an uploaded asset by its public ID.
func (c *CloudinaryClient) DestroyImage(ctx context.Context, publicID string) error {
	_, err := c.Client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed for %s: %w", publicID, err)
	}
	return nil
}
