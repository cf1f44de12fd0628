package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/service"
)

// multipart forms are parsed with a little headroom above the proof limit so
// oversize uploads fail validation instead of the parser.
const maxPaymentFormBytes = 8 << 20

type RentalHandler struct {
	rentalSvc    service.RentalService
	availability service.AvailabilityChecker
}

func NewRentalHandler(rentalSvc service.RentalService, availability service.AvailabilityChecker) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, availability: availability}
}

type checkoutRequest struct {
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	PickupTime    string `json:"pickup_time"`
	RenterName    string `json:"renter_name" validate:"required"`
	RenterPhone   string `json:"renter_phone" validate:"required"`
	RenterAddress string `json:"renter_address"`
}

func (h *RentalHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	claims := claimsFromContext(r.Context())
	rentals, err := h.rentalSvc.CheckoutCart(r.Context(), claims.UserID, service.CheckoutInput{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PickupTime:    req.PickupTime,
		RenterName:    req.RenterName,
		RenterPhone:   req.RenterPhone,
		RenterAddress: req.RenterAddress,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"rentals": rentals})
}

// CheckAvailability answers whether a set of cameras is free for a date
// range, so the storefront can warn before checkout.
func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var cameraIDs []int32
	for _, raw := range strings.Split(q.Get("camera_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid camera_ids"})
			return
		}
		cameraIDs = append(cameraIDs, int32(id))
	}

	available, err := h.availability.IsAvailable(r.Context(), cameraIDs, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	claims := claimsFromContext(r.Context())
	rental, err := h.rentalSvc.GetRental(r.Context(), claims.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	p := parsePageParams(r)
	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), claims.UserID, r.URL.Query().Get("status"), p.Page, p.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals, total, p)
}

func (h *RentalHandler) ListLendings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	p := parsePageParams(r)
	rentals, total, err := h.rentalSvc.ListLendings(r.Context(), claims.UserID, r.URL.Query().Get("status"), p.Page, p.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals, total, p)
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(w, r, h.rentalSvc.Approve)
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(w, r, h.rentalSvc.Reject)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(w, r, h.rentalSvc.Cancel)
}

func (h *RentalHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(w, r, h.rentalSvc.ConfirmPayment)
}

func (h *RentalHandler) lifecycleAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actorID, rentalID int32) (*domain.Rental, error)) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	claims := claimsFromContext(r.Context())
	rental, err := action(r.Context(), claims.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// SubmitPayment accepts a multipart form with the payment method, an optional
// transaction reference, and for online payments an image proof.
func (h *RentalHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	if err := r.ParseMultipartForm(maxPaymentFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	in := service.PaymentInput{
		Method:         domain.PaymentMethod(r.FormValue("method")),
		TransactionRef: r.FormValue("transaction_ref"),
	}

	file, header, err := r.FormFile("proof")
	if err == nil {
		defer file.Close()
		in.Proof = file
		in.ProofFileName = header.Filename
		in.ProofContentType = header.Header.Get("Content-Type")
		in.ProofSize = header.Size
	} else if err != http.ErrMissingFile {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid proof file"})
		return
	}

	claims := claimsFromContext(r.Context())
	rental, err := h.rentalSvc.SubmitPayment(r.Context(), claims.UserID, rentalID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) GetPaymentProofURL(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	claims := claimsFromContext(r.Context())
	url, err := h.rentalSvc.GetPaymentProofURL(r.Context(), claims.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
