package http

import (
	"encoding/json"
	"net/http"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/service"
)

type CartHandler struct {
	cartSvc service.CartService
}

func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

type cartItemRequest struct {
	CameraID int32 `json:"camera_id" validate:"required,gt=0"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	items, err := h.cartSvc.GetCart(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: emptyIfNil(items)})
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims := claimsFromContext(r.Context())
	items, err := h.cartSvc.AddToCart(r.Context(), claims.UserID, req.CameraID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: emptyIfNil(items)})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	cameraID, err := pathID(r, "cameraID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid camera id"})
		return
	}

	claims := claimsFromContext(r.Context())
	items, err := h.cartSvc.RemoveFromCart(r.Context(), claims.UserID, cameraID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: emptyIfNil(items)})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if err := h.cartSvc.ClearCart(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: []domain.CartItem{}})
}

func emptyIfNil(items []domain.CartItem) []domain.CartItem {
	if items == nil {
		return []domain.CartItem{}
	}
	return items
}
