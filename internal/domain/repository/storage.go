package repository

import (
	"context"
	"time"
)

// ArtworkStorage defines access to poster artwork in object storage.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type ArtworkStorage interface {
	// PresignedPosterURL creates a presigned download URL for a poster key.
	// The URL is valid for the specified duration.
	PresignedPosterURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
