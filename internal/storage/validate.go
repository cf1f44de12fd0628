package storage

import (
	"fmt"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
)

// MaxImageSizeBytes is the hard cap for uploaded images.
const MaxImageSizeBytes = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ValidateImage rejects a file before it reaches blob storage. Only image
// MIME types are accepted, up to 5 MB. Returns the canonical file extension
// for the content type.
func ValidateImage(contentType string, size int64) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s is not an accepted image type", domain.ErrFileRejected, contentType)
	}
	if size > MaxImageSizeBytes {
		return "", fmt.Errorf("%w: file exceeds the 5 MB limit", domain.ErrFileRejected)
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: file is empty", domain.ErrFileRejected)
	}
	return ext, nil
}
