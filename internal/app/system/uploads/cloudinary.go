package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores uploads in a Cloudinary folder and returns the secure URL.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds a client from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are incomplete")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Backend() string { return "cloudinary" }

func publicID(name string) string {
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}

func (c *Cloudinary) Save(ctx context.Context, name string, r io.Reader, _ string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: publicID(name),
		Folder:   c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	if resp == nil || resp.SecureURL == "" {
		return "", errors.New("upload error: empty response")
	}
	return resp.SecureURL, nil
}

func (c *Cloudinary) Delete(ctx context.Context, name string) error {
	id := publicID(name)
	if c.folder != "" {
		id = c.folder + "/" + id
	}
	if _, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id}); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}
