package port

import "context"

// ObjectStorage abstracts the archive bucket for generated invoice PDFs.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error)
}
