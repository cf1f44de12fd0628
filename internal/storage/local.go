package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	// ErrInvalidKey rejects storage keys that would resolve outside the
	// uploads directory.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrBadDownloadToken rejects download links whose token does not match
	// the key and expiry they carry.
	ErrBadDownloadToken = errors.New("download token mismatch")
)

// LocalStorage implements BlobStorage on the local filesystem. Signed URLs
// point back at the server's download route with an HMAC token over the key
// and expiry, so a link cannot be retargeted at another file.
type LocalStorage struct {
	baseURL    string // Server URL (e.g., "http://localhost:8081")
	uploadsDir string
	signSecret []byte
}

func NewLocalStorage(baseURL, uploadsDir, signSecret string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
		signSecret: []byte(signSecret),
	}, nil
}

// resolve maps a key to its on-disk path. Keys are relative slash paths;
// anything that would escape the uploads directory is refused.
func (s *LocalStorage) resolve(key string) (string, error) {
	if key == "" || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.uploadsDir, key), nil
}

func (s *LocalStorage) signToken(key string, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.signSecret)
	fmt.Fprintf(mac, "%s\x00%d", key, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *LocalStorage) SaveFile(key string, reader io.Reader) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GenerateSignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if _, err := s.resolve(key); err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(expiresIn).Unix()
	q := url.Values{}
	q.Set("key", key)
	q.Set("expires", strconv.FormatInt(expiresAt, 10))
	return fmt.Sprintf("%s/api/v1/files/%s?%s", s.baseURL, s.signToken(key, expiresAt), q.Encode()), nil
}

func (s *LocalStorage) VerifyDownloadToken(key string, expiresAt int64, token string) error {
	if _, err := s.resolve(key); err != nil {
		return err
	}
	if !hmac.Equal([]byte(s.signToken(key, expiresAt)), []byte(token)) {
		return ErrBadDownloadToken
	}
	return nil
}

func (s *LocalStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
