// Package blobstore stores photo data under generated keys.
package blobstore

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
)

// keyRe matches keys produced by NewKey.
var keyRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z]{3,4}$`)

// extensions maps sniffed content types to file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// NewKey returns a fresh key for the data, with an extension from its content type.
func NewKey(data []byte) string {
	ext, ok := extensions[http.DetectContentType(data)]
	if !ok {
		ext = ".bin"
	}
	return uuid.NewString() + ext
}

// ValidateKey rejects keys that this package could not have produced.
func ValidateKey(key string) error {
	if !keyRe.MatchString(key) {
		return fmt.Errorf("invalid photo key %q", key)
	}
	return nil
}

// New returns the blob store selected by the configuration.
func New(ctx context.Context, cfg *contract.Config) (contract.BlobStore, error) {
	switch cfg.BlobBackend {
	case schema.FSBlobBackend, "":
		dir := cfg.BlobDir
		if dir == "" {
			dir = contract.GetBlobDir()
		}
		return NewFSStore(dir), nil
	case schema.S3BlobBackend:
		return NewS3Store(ctx, cfg.S3)
	case schema.NoneBlobBackend:
		return NoneStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported blob backend: %s. Must be fs, s3, or none", cfg.BlobBackend)
	}
}

// NoneStore discards saved data. It is used when photo storage is disabled.
type NoneStore struct{}

var _ contract.BlobStore = NoneStore{} // Compile-time check

// Save implements the BlobStore interface.
func (NoneStore) Save(context.Context, []byte) (string, error) {
	return "", fmt.Errorf("photo storage is disabled (blob-backend=none)")
}

// Load implements the BlobStore interface.
func (NoneStore) Load(context.Context, string) ([]byte, error) {
	return nil, schema.ErrBlobNotFound
}

// Delete implements the BlobStore interface.
func (NoneStore) Delete(context.Context, string) error {
	return nil
}
