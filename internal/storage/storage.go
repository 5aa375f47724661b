package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var (
	ErrObjectNotFound  = errors.New("object not found in storage")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

// MediaStorage turns stored exercise media references into URLs a client
// can fetch.
type MediaStorage interface {
	// ResolveMediaURL returns ref unchanged unless it names an object in the
	// media area, in which case a temporary download URL is returned.
	ResolveMediaURL(ctx context.Context, ref string) (string, error)

	// GeneratePresignedUploadURL creates a temporary URL that allows PUT
	// requests for uploading media directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
}

// PassthroughMedia is used when no bucket is configured; media references
// are already public URLs.
type PassthroughMedia struct{}

func (PassthroughMedia) ResolveMediaURL(_ context.Context, ref string) (string, error) {
	return ref, nil
}

func (PassthroughMedia) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}
