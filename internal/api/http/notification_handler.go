package http

import (
	"net/http"

	"github.com/Ubaid-2/Camera-rental/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	p := parsePageParams(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), claims.UserID, p.Page, p.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, notes, total, p)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	noteID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}
	claims := claimsFromContext(r.Context())
	if err := h.noteSvc.MarkAsRead(r.Context(), claims.UserID, noteID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}
