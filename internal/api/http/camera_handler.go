package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/service"

	"github.com/gorilla/mux"
)

type CameraHandler struct {
	cameraSvc service.CameraService
}

func NewCameraHandler(cameraSvc service.CameraService) *CameraHandler {
	return &CameraHandler{cameraSvc: cameraSvc}
}

type cameraRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	PricePerDayCents int32  `json:"price_per_day_cents" validate:"required,gt=0"`
	ImageKey         string `json:"image_key"`
	Available        *bool  `json:"available"`
}

func (h *CameraHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cameraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims := claimsFromContext(r.Context())
	camera := &domain.Camera{
		Name:             req.Name,
		Description:      req.Description,
		PricePerDayCents: req.PricePerDayCents,
		ImageKey:         req.ImageKey,
		Available:        true,
	}
	if req.Available != nil {
		camera.Available = *req.Available
	}

	if err := h.cameraSvc.AddCamera(r.Context(), claims.UserID, camera); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camera)
}

func (h *CameraHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid camera id"})
		return
	}
	camera, err := h.cameraSvc.GetCamera(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camera)
}

func (h *CameraHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid camera id"})
		return
	}

	var req cameraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims := claimsFromContext(r.Context())
	camera := &domain.Camera{
		ID:               id,
		Name:             req.Name,
		Description:      req.Description,
		PricePerDayCents: req.PricePerDayCents,
		ImageKey:         req.ImageKey,
		Available:        true,
	}
	if req.Available != nil {
		camera.Available = *req.Available
	}

	updated, err := h.cameraSvc.UpdateCamera(r.Context(), claims.UserID, camera)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CameraHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	p := parsePageParams(r)
	cameras, total, err := h.cameraSvc.ListAvailable(r.Context(), p.Page, p.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, cameras, total, p)
}

func (h *CameraHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	p := parsePageParams(r)
	cameras, total, err := h.cameraSvc.ListMyCameras(r.Context(), claims.UserID, p.Page, p.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, cameras, total, p)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
