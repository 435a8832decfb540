package repository

import (
	"context"
)

// MediaKind is the asset class of a stored media object.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

func (k MediaKind) IsValid() bool {
	return k == MediaKindVideo || k == MediaKindImage
}

// UploadResult describes a stored media asset.
type UploadResult struct {
	// URL is the canonical public URL of the asset.
	URL string
	// Key is the object path within the bucket.
	Key string
	// Duration is the media length in seconds. Zero for images.
	Duration float64
}

// MediaStore defines the interface for media asset storage.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type MediaStore interface {
	// Upload stores the file at localPath and returns its canonical URL.
	// The caller owns localPath and is responsible for removing it.
	Upload(ctx context.Context, localPath string, kind MediaKind) (*UploadResult, error)

	// Delete removes the asset addressed by url and returns its object key.
	// Returns ErrInvalidMediaURL if url does not point into this store.
	Delete(ctx context.Context, url string, kind MediaKind) (string, error)
}
