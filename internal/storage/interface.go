package storage

import (
	"context"
	"io"
	"time"
)

// BlobStorage is the interface for payment-proof and document storage
// backends. Keys are opaque strings; callers never interpret them.
type BlobStorage interface {
	// SaveFile writes a file under the given key.
	SaveFile(key string, reader io.Reader) error

	// GenerateSignedDownloadURL returns a temporary link for a stored file.
	GenerateSignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// VerifyDownloadToken checks a signed link's token against the key and
	// expiry it carries.
	VerifyDownloadToken(key string, expiresAt int64, token string) error

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// ReadFile opens a stored file for reading (used by the download handler).
	ReadFile(key string) (io.ReadCloser, error)
}
