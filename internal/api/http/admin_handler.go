package http

import (
	"encoding/json"
	"net/http"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.adminSvc.ListUsers(r.Context(), q.Get("role"), q.Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	claims := claimsFromContext(r.Context())
	if err := h.adminSvc.ApproveUser(r.Context(), claims.UserID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.AccountStatusApproved)})
}

type blockUserRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	var req blockUserRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	claims := claimsFromContext(r.Context())
	if err := h.adminSvc.BlockUser(r.Context(), claims.UserID, userID, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.AccountStatusBlocked)})
}

func (h *AdminHandler) GetIDDocumentURL(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	claims := claimsFromContext(r.Context())
	url, err := h.adminSvc.GetIDDocumentURL(r.Context(), claims.UserID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
