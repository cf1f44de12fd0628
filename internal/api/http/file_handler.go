package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// FileHandler serves signed download links and accepts listing image uploads
// for local blob storage.
type FileHandler struct {
	blobStore storage.BlobStorage
}

func NewFileHandler(blobStore storage.BlobStorage) *FileHandler {
	return &FileHandler{blobStore: blobStore}
}

// Download streams a stored file. Links carry an expiry timestamp and an
// HMAC token issued by GenerateSignedDownloadURL; expired or tampered links
// are refused.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing key parameter"})
		return
	}

	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if err != nil || time.Now().Unix() > expires {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "link expired"})
		return
	}

	if err := h.blobStore.VerifyDownloadToken(key, expires, mux.Vars(r)["token"]); err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "invalid download link"})
		return
	}

	file, err := h.blobStore.ReadFile(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}

// UploadListingImage stores a camera listing photo and returns its storage
// key, which the client then attaches to the camera record.
func (h *FileHandler) UploadListingImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPaymentFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}
	defer file.Close()

	ext, err := storage.ValidateImage(header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFromContext(r.Context())
	key := fmt.Sprintf("listings/%d_%s%s", claims.UserID, uuid.New().String(), ext)
	if err := h.blobStore.SaveFile(key, file); err != nil {
		writeError(w, fmt.Errorf("save listing image: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}
