package storage

import (
	"context"
	"time"
)

// Provider is the object storage abstraction. Implementations deal in
// stored paths of the form "bucket/fileName"; callers persist those strings
// verbatim and never full URLs, so switching providers needs no data
// migration.
type Provider interface {
	// PutObject stores data under objectName and returns the stored path.
	PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	// GetObject returns the bytes stored at the given path.
	GetObject(ctx context.Context, storedPath string) ([]byte, error)
	// Delete removes the object at the given path.
	Delete(ctx context.Context, storedPath string) error
	// Exists reports whether an object is stored at the given path.
	Exists(ctx context.Context, storedPath string) (bool, error)
	// Copy duplicates the object at srcPath to dstName, returning the new stored path.
	Copy(ctx context.Context, srcPath, dstName string) (string, error)
	// PresignedURL returns a time-limited download URL for the stored path.
	PresignedURL(ctx context.Context, storedPath string, expiry time.Duration) (string, error)
}
