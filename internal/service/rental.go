package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/cart"
	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/logger"
	"github.com/Ubaid-2/Camera-rental/internal/pricing"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
	"github.com/Ubaid-2/Camera-rental/internal/storage"

	"github.com/google/uuid"
)

const proofLinkTTL = time.Hour

type rentalService struct {
	rentalRepo   repository.RentalRepository
	cameraRepo   repository.CameraRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NotificationRepository
	cartStore    cart.Store
	availability AvailabilityChecker
	blobStore    storage.BlobStorage
	emailSvc     EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	cameraRepo repository.CameraRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	cartStore cart.Store,
	availability AvailabilityChecker,
	blobStore storage.BlobStorage,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		cameraRepo:   cameraRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		cartStore:    cartStore,
		availability: availability,
		blobStore:    blobStore,
		emailSvc:     emailSvc,
	}
}

func (s *rentalService) CheckoutCart(ctx context.Context, renterID int32, in CheckoutInput) ([]domain.Rental, error) {
	if err := validateCheckoutInput(in); err != nil {
		return nil, err
	}

	items, err := s.cartStore.List(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	cameraIDs := make([]int32, len(items))
	for i, item := range items {
		cameraIDs[i] = item.CameraID
	}

	// The availability check and the insert below are not serialized; two
	// concurrent checkouts for overlapping dates can both pass the check.
	// The owner adjudicates such conflicts at approval time.
	available, err := s.availability.IsAvailable(ctx, cameraIDs, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrConflict
	}

	start, _ := pricing.ParseDate(in.StartDate)
	end, _ := pricing.ParseDate(in.EndDate)
	days := pricing.ChargeableDays(start, end)

	rentals := make([]*domain.Rental, len(items))
	for i, item := range items {
		rentals[i] = &domain.Rental{
			CameraID:        item.CameraID,
			RenterID:        renterID,
			OwnerID:         item.OwnerID,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			TotalPriceCents: pricing.RentalTotalCents(item.PricePerDayCents, days),
			Status:          domain.RentalStatusPending,
			RenterName:      in.RenterName,
			RenterPhone:     in.RenterPhone,
			RenterAddress:   in.RenterAddress,
			PickupTime:      in.PickupTime,
		}
	}

	if err := s.rentalRepo.CreateBatch(ctx, rentals); err != nil {
		return nil, err
	}

	if err := s.cartStore.Clear(ctx, renterID); err != nil {
		logger.Warn("Failed to clear cart after checkout", "renter_id", renterID, "error", err)
	}

	for i, rt := range rentals {
		s.notifyOwnerOfRequest(ctx, rt, items[i].Name)
	}

	created := make([]domain.Rental, len(rentals))
	for i, rt := range rentals {
		created[i] = *rt
	}
	return created, nil
}

func validateCheckoutInput(in CheckoutInput) error {
	start, err := pricing.ParseDate(in.StartDate)
	if err != nil {
		return domain.NewValidationError("start_date", err.Error())
	}
	end, err := pricing.ParseDate(in.EndDate)
	if err != nil {
		return domain.NewValidationError("end_date", err.Error())
	}
	if start.After(end) {
		return domain.NewValidationError("end_date", "end date must not be before start date")
	}
	for field, value := range map[string]string{
		"renter_name":    in.RenterName,
		"renter_phone":   in.RenterPhone,
		"renter_address": in.RenterAddress,
		"pickup_time":    in.PickupTime,
	} {
		if strings.TrimSpace(value) == "" {
			return domain.NewValidationError(field, "required")
		}
	}
	return nil
}

func (s *rentalService) Approve(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, ownerID, ownerSide, domain.ActionApprove)
	if err != nil {
		return nil, err
	}

	renter, camera := s.counterparts(ctx, rt)
	if renter != nil && camera != nil {
		owner, _ := s.userRepo.GetByID(ctx, ownerID)
		ownerName := ""
		if owner != nil {
			ownerName = owner.Name
		}
		if err := s.emailSvc.SendRentalApprovalNotification(ctx, renter.Email, camera.Name, ownerName); err != nil {
			logger.Warn("Failed to send approval email", "rental_id", rt.ID, "error", err)
		}
		s.notify(ctx, rt.RenterID, "Rental Approved",
			fmt.Sprintf("Your rental request for %s was approved. Submit payment to confirm.", camera.Name),
			"RENTAL_APPROVED", rt.ID)
	}
	return rt, nil
}

func (s *rentalService) Reject(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, ownerID, ownerSide, domain.ActionReject)
	if err != nil {
		return nil, err
	}

	renter, camera := s.counterparts(ctx, rt)
	if renter != nil && camera != nil {
		owner, _ := s.userRepo.GetByID(ctx, ownerID)
		ownerName := ""
		if owner != nil {
			ownerName = owner.Name
		}
		if err := s.emailSvc.SendRentalRejectionNotification(ctx, renter.Email, camera.Name, ownerName); err != nil {
			logger.Warn("Failed to send rejection email", "rental_id", rt.ID, "error", err)
		}
		s.notify(ctx, rt.RenterID, "Rental Rejected",
			fmt.Sprintf("Your rental request for %s was rejected.", camera.Name),
			"RENTAL_REJECTED", rt.ID)
	}
	return rt, nil
}

func (s *rentalService) Cancel(ctx context.Context, renterID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, renterID, renterSide, domain.ActionCancel)
	if err != nil {
		return nil, err
	}

	owner, _ := s.userRepo.GetByID(ctx, rt.OwnerID)
	camera, _ := s.cameraRepo.GetByID(ctx, rt.CameraID)
	if owner != nil && camera != nil {
		if err := s.emailSvc.SendRentalCancellationNotification(ctx, owner.Email, rt.RenterName, camera.Name); err != nil {
			logger.Warn("Failed to send cancellation email", "rental_id", rt.ID, "error", err)
		}
		s.notify(ctx, rt.OwnerID, "Rental Cancelled",
			fmt.Sprintf("%s cancelled the rental request for %s.", rt.RenterName, camera.Name),
			"RENTAL_CANCELLED", rt.ID)
	}
	return rt, nil
}

func (s *rentalService) SubmitPayment(ctx context.Context, renterID, rentalID int32, in PaymentInput) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != renterID {
		return nil, domain.ErrUnauthorized
	}
	next, err := domain.NextStatus(rt.Status, domain.ActionSubmitPayment)
	if err != nil {
		return nil, err
	}

	var proofKey string
	switch in.Method {
	case domain.PaymentMethodOnline:
		if strings.TrimSpace(in.TransactionRef) == "" {
			return nil, domain.NewValidationError("transaction_ref", "required for online payment")
		}
		if in.Proof == nil {
			return nil, domain.NewValidationError("proof_file", "payment screenshot required for online payment")
		}
		ext, err := storage.ValidateImage(in.ProofContentType, in.ProofSize)
		if err != nil {
			return nil, err
		}
		if fileExt := strings.ToLower(path.Ext(in.ProofFileName)); fileExt != "" {
			ext = fileExt
		}
		proofKey = fmt.Sprintf("proofs/%d_payment_%s%s", renterID, uuid.New().String(), ext)
		if err := s.blobStore.SaveFile(proofKey, in.Proof); err != nil {
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
	case domain.PaymentMethodFaceToFace:
		// No evidence collected up front; the owner confirms after meetup.
	default:
		return nil, domain.NewValidationError("payment_method", "must be online or face-to-face")
	}

	if err := s.rentalRepo.RecordPayment(ctx, rentalID, in.Method, in.TransactionRef, proofKey); err != nil {
		if proofKey != "" {
			if delErr := s.blobStore.DeleteFile(ctx, proofKey); delErr != nil {
				logger.Warn("Failed to remove orphaned payment proof", "key", proofKey, "error", delErr)
			}
		}
		return nil, err
	}

	rt.Status = next
	rt.PaymentMethod = in.Method
	rt.TransactionRef = in.TransactionRef
	rt.PaymentProofKey = proofKey

	owner, _ := s.userRepo.GetByID(ctx, rt.OwnerID)
	camera, _ := s.cameraRepo.GetByID(ctx, rt.CameraID)
	if owner != nil && camera != nil {
		if err := s.emailSvc.SendPaymentSubmittedNotification(ctx, owner.Email, rt.RenterName, camera.Name, in.Method); err != nil {
			logger.Warn("Failed to send payment submitted email", "rental_id", rt.ID, "error", err)
		}
		s.notify(ctx, rt.OwnerID, "Payment Submitted",
			fmt.Sprintf("%s submitted a %s payment for %s.", rt.RenterName, in.Method, camera.Name),
			"PAYMENT_SUBMITTED", rt.ID)
	}
	return rt, nil
}

func (s *rentalService) ConfirmPayment(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.transition(ctx, rentalID, ownerID, ownerSide, domain.ActionConfirmPayment)
	if err != nil {
		return nil, err
	}

	renter, camera := s.counterparts(ctx, rt)
	if renter != nil && camera != nil {
		if err := s.emailSvc.SendPaymentConfirmedNotification(ctx, renter.Email, camera.Name, rt.PickupTime); err != nil {
			logger.Warn("Failed to send payment confirmed email", "rental_id", rt.ID, "error", err)
		}
		s.notify(ctx, rt.RenterID, "Payment Confirmed",
			fmt.Sprintf("Payment confirmed! Your rental of %s is ready for pickup.", camera.Name),
			"PAYMENT_CONFIRMED", rt.ID)
	}
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return nil, domain.ErrUnauthorized
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *rentalService) ListLendings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func (s *rentalService) GetPaymentProofURL(ctx context.Context, userID, rentalID int32) (string, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return "", err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return "", domain.ErrUnauthorized
	}
	if rt.PaymentProofKey == "" {
		return "", domain.ErrNotFound
	}
	return s.blobStore.GenerateSignedDownloadURL(ctx, rt.PaymentProofKey, proofLinkTTL)
}

type actorSide int

const (
	ownerSide actorSide = iota
	renterSide
)

// transition loads a rental, checks the caller's role, resolves the target
// status from the transition table, and applies it as a conditional update.
// A concurrent writer that moved the rental out of its source status first
// surfaces as ErrInvalidTransition.
func (s *rentalService) transition(ctx context.Context, rentalID, actorID int32, side actorSide, action domain.RentalAction) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if side == ownerSide && rt.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	if side == renterSide && rt.RenterID != actorID {
		return nil, domain.ErrUnauthorized
	}
	if rt.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: rental %d is closed", domain.ErrInvalidTransition, rentalID)
	}

	next, err := domain.NextStatus(rt.Status, action)
	if err != nil {
		return nil, err
	}
	if err := s.rentalRepo.TransitionStatus(ctx, rentalID, rt.Status, next); err != nil {
		return nil, err
	}
	rt.Status = next
	return rt, nil
}

func (s *rentalService) counterparts(ctx context.Context, rt *domain.Rental) (*domain.User, *domain.Camera) {
	renter, _ := s.userRepo.GetByID(ctx, rt.RenterID)
	camera, _ := s.cameraRepo.GetByID(ctx, rt.CameraID)
	return renter, camera
}

func (s *rentalService) notifyOwnerOfRequest(ctx context.Context, rt *domain.Rental, cameraName string) {
	owner, err := s.userRepo.GetByID(ctx, rt.OwnerID)
	if err != nil {
		logger.Warn("Failed to load owner for request notification", "rental_id", rt.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendRentalRequestNotification(ctx, owner.Email, rt.RenterName, cameraName, rt.StartDate, rt.EndDate); err != nil {
		logger.Warn("Failed to send request email", "rental_id", rt.ID, "error", err)
	}
	s.notify(ctx, rt.OwnerID, "New Rental Request",
		fmt.Sprintf("%s requested to rent %s from %s to %s.", rt.RenterName, cameraName, rt.StartDate, rt.EndDate),
		"RENTAL_REQUEST", rt.ID)
}

func (s *rentalService) notify(ctx context.Context, userID int32, title, message, noteType string, rentalID int32) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":      noteType,
			"rental_id": fmt.Sprintf("%d", rentalID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "user_id", userID, "error", err)
	}
}
