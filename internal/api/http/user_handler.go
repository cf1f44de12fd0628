package http

import (
	"encoding/json"
	"net/http"

	"github.com/Ubaid-2/Camera-rental/internal/service"
)

const maxDocumentFormBytes = 8 << 20

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	user, err := h.userSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	claims := claimsFromContext(r.Context())
	user, err := h.userSvc.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SubmitIDDocument accepts a multipart form with an identity document image
// for seller verification.
func (h *UserHandler) SubmitIDDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "document file is required"})
		return
	}
	defer file.Close()

	claims := claimsFromContext(r.Context())
	user, err := h.userSvc.SubmitIDDocument(r.Context(), claims.UserID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
