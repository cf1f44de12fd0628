package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Ubaid-2/Camera-rental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type rentalFixture struct {
	rentalRepo *MockRentalRepo
	cameraRepo *MockCameraRepo
	userRepo   *MockUserRepo
	noteRepo   *MockNotificationRepo
	cartStore  *MockCartStore
	blobStore  *MockBlobStorage
	emailSvc   *MockEmailService
	svc        RentalService
}

func newRentalFixture() *rentalFixture {
	f := &rentalFixture{
		rentalRepo: new(MockRentalRepo),
		cameraRepo: new(MockCameraRepo),
		userRepo:   new(MockUserRepo),
		noteRepo:   new(MockNotificationRepo),
		cartStore:  new(MockCartStore),
		blobStore:  new(MockBlobStorage),
		emailSvc:   new(MockEmailService),
	}
	f.svc = NewRentalService(
		f.rentalRepo, f.cameraRepo, f.userRepo, f.noteRepo,
		f.cartStore, NewAvailabilityChecker(f.rentalRepo), f.blobStore, f.emailSvc,
	)
	return f
}

// allowSideEffects stubs the best-effort email and in-app notifications so
// lifecycle tests can focus on state changes.
func (f *rentalFixture) allowSideEffects() {
	f.userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).Return(&domain.User{ID: 1, Email: "someone@test.com", Name: "Someone"}, nil).Maybe()
	f.cameraRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).Return(&domain.Camera{ID: 1, Name: "Canon R5"}, nil).Maybe()
	f.emailSvc.On("SendRentalRequestNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendRentalApprovalNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendRentalRejectionNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendRentalCancellationNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendPaymentSubmittedNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendPaymentConfirmedNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Maybe()
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		StartDate:     "2025-07-01",
		EndDate:       "2025-07-05",
		PickupTime:    "10:00",
		RenterName:    "Renter",
		RenterPhone:   "555-0100",
		RenterAddress: "1 Main St",
	}
}

func TestRentalService_CheckoutCart(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)

	cartItems := []domain.CartItem{
		{CameraID: 10, OwnerID: 100, Name: "Canon R5", PricePerDayCents: 1000},
		{CameraID: 20, OwnerID: 200, Name: "Sony A7", PricePerDayCents: 2500},
	}

	t.Run("creates one pending rental per cart item", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.cartStore.On("List", ctx, renterID).Return(cartItems, nil)
		f.rentalRepo.On("FindConflicts", ctx, []int32{10, 20}, "2025-07-01", "2025-07-05").Return([]domain.Rental{}, nil)
		f.rentalRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*domain.Rental")).Return(nil)
		f.cartStore.On("Clear", ctx, renterID).Return(nil)

		rentals, err := f.svc.CheckoutCart(ctx, renterID, validCheckout())
		require.NoError(t, err)
		require.Len(t, rentals, 2)

		// Jul 1 to Jul 5 bills four days.
		assert.Equal(t, domain.RentalStatusPending, rentals[0].Status)
		assert.Equal(t, int32(4000), rentals[0].TotalPriceCents)
		assert.Equal(t, int32(10000), rentals[1].TotalPriceCents)
		assert.Equal(t, renterID, rentals[0].RenterID)
		assert.Equal(t, int32(100), rentals[0].OwnerID)
		f.cartStore.AssertCalled(t, "Clear", ctx, renterID)
	})

	t.Run("same-day rental bills one day", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		in := validCheckout()
		in.StartDate, in.EndDate = "2025-06-01", "2025-06-01"

		f.cartStore.On("List", ctx, renterID).Return(cartItems[:1], nil)
		f.rentalRepo.On("FindConflicts", ctx, []int32{10}, "2025-06-01", "2025-06-01").Return([]domain.Rental{}, nil)
		f.rentalRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*domain.Rental")).Return(nil)
		f.cartStore.On("Clear", ctx, renterID).Return(nil)

		rentals, err := f.svc.CheckoutCart(ctx, renterID, in)
		require.NoError(t, err)
		assert.Equal(t, int32(1000), rentals[0].TotalPriceCents)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newRentalFixture()
		f.cartStore.On("List", ctx, renterID).Return([]domain.CartItem{}, nil)

		_, err := f.svc.CheckoutCart(ctx, renterID, validCheckout())
		assert.ErrorIs(t, err, domain.ErrCartEmpty)
		f.rentalRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("date conflict blocks the whole checkout", func(t *testing.T) {
		f := newRentalFixture()
		f.cartStore.On("List", ctx, renterID).Return(cartItems, nil)
		f.rentalRepo.On("FindConflicts", ctx, []int32{10, 20}, "2025-07-01", "2025-07-05").Return([]domain.Rental{
			{ID: 7, CameraID: 20, StartDate: "2025-07-04", EndDate: "2025-07-06", Status: domain.RentalStatusApproved},
		}, nil)

		_, err := f.svc.CheckoutCart(ctx, renterID, validCheckout())
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.rentalRepo.AssertNotCalled(t, "CreateBatch")
		f.cartStore.AssertNotCalled(t, "Clear")
	})

	t.Run("availability lookup failure aborts checkout", func(t *testing.T) {
		f := newRentalFixture()
		f.cartStore.On("List", ctx, renterID).Return(cartItems, nil)
		f.rentalRepo.On("FindConflicts", ctx, []int32{10, 20}, "2025-07-01", "2025-07-05").Return(nil, errors.New("db down"))

		_, err := f.svc.CheckoutCart(ctx, renterID, validCheckout())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		f.rentalRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("batch insert failure keeps the cart", func(t *testing.T) {
		f := newRentalFixture()
		f.cartStore.On("List", ctx, renterID).Return(cartItems, nil)
		f.rentalRepo.On("FindConflicts", ctx, []int32{10, 20}, "2025-07-01", "2025-07-05").Return([]domain.Rental{}, nil)
		f.rentalRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*domain.Rental")).Return(errors.New("insert failed"))

		_, err := f.svc.CheckoutCart(ctx, renterID, validCheckout())
		assert.Error(t, err)
		f.cartStore.AssertNotCalled(t, "Clear")
	})

	t.Run("missing contact details rejected", func(t *testing.T) {
		f := newRentalFixture()
		in := validCheckout()
		in.RenterPhone = "  "

		_, err := f.svc.CheckoutCart(ctx, renterID, in)
		assert.True(t, domain.IsValidation(err))
		f.cartStore.AssertNotCalled(t, "List")
	})

	t.Run("reversed date range rejected", func(t *testing.T) {
		f := newRentalFixture()
		in := validCheckout()
		in.StartDate, in.EndDate = "2025-07-05", "2025-07-01"

		_, err := f.svc.CheckoutCart(ctx, renterID, in)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestRentalService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(100)
	rentalID := int32(5)

	pending := func() *domain.Rental {
		return &domain.Rental{
			ID: rentalID, CameraID: 10, RenterID: 1, OwnerID: ownerID,
			StartDate: "2025-07-01", EndDate: "2025-07-05",
			Status: domain.RentalStatusPending, RenterName: "Renter",
		}
	}

	t.Run("owner approves a pending request", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)
		f.rentalRepo.On("TransitionStatus", ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusApproved).Return(nil)

		rt, err := f.svc.Approve(ctx, ownerID, rentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusApproved, rt.Status)

		// Approval trusts the pending request's hold on the dates; it does
		// not re-run the conflict query.
		f.rentalRepo.AssertNotCalled(t, "FindConflicts")
	})

	t.Run("non-owner cannot approve", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)

		_, err := f.svc.Approve(ctx, int32(999), rentalID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		f.rentalRepo.AssertNotCalled(t, "TransitionStatus")
	})

	t.Run("approving a non-pending rental fails", func(t *testing.T) {
		f := newRentalFixture()
		rt := pending()
		rt.Status = domain.RentalStatusPaymentPending
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(rt, nil)

		_, err := f.svc.Approve(ctx, ownerID, rentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("closed rental cannot be acted on", func(t *testing.T) {
		f := newRentalFixture()
		rt := pending()
		rt.Status = domain.RentalStatusCancelled
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(rt, nil)

		_, err := f.svc.Approve(ctx, ownerID, rentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.rentalRepo.AssertNotCalled(t, "TransitionStatus")
	})

	t.Run("concurrent transition loses the race", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)
		f.rentalRepo.On("TransitionStatus", ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusApproved).Return(domain.ErrInvalidTransition)

		_, err := f.svc.Approve(ctx, ownerID, rentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestRentalService_RejectAndCancel(t *testing.T) {
	ctx := context.Background()
	rentalID := int32(5)

	pending := func() *domain.Rental {
		return &domain.Rental{
			ID: rentalID, CameraID: 10, RenterID: 1, OwnerID: 100,
			Status: domain.RentalStatusPending, RenterName: "Renter",
		}
	}

	t.Run("owner rejects", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)
		f.rentalRepo.On("TransitionStatus", ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusRejected).Return(nil)

		rt, err := f.svc.Reject(ctx, int32(100), rentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusRejected, rt.Status)
	})

	t.Run("renter cancels", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)
		f.rentalRepo.On("TransitionStatus", ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusCancelled).Return(nil)

		rt, err := f.svc.Cancel(ctx, int32(1), rentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, rt.Status)
	})

	t.Run("owner cannot cancel on the renter's behalf", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(pending(), nil)

		_, err := f.svc.Cancel(ctx, int32(100), rentalID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRentalService_SubmitPayment(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)
	rentalID := int32(5)

	approved := func() *domain.Rental {
		return &domain.Rental{
			ID: rentalID, CameraID: 10, RenterID: renterID, OwnerID: 100,
			Status: domain.RentalStatusApproved, RenterName: "Renter",
		}
	}

	onlineInput := func() PaymentInput {
		return PaymentInput{
			Method:           domain.PaymentMethodOnline,
			TransactionRef:   "TRX-123",
			ProofFileName:    "receipt.png",
			ProofContentType: "image/png",
			ProofSize:        1024,
			Proof:            strings.NewReader("fake image bytes"),
		}
	}

	t.Run("online payment with proof", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)
		f.blobStore.On("SaveFile", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "proofs/1_payment_") && strings.HasSuffix(key, ".png")
		}), mock.Anything).Return(nil)
		f.rentalRepo.On("RecordPayment", ctx, rentalID, domain.PaymentMethodOnline, "TRX-123", mock.AnythingOfType("string")).Return(nil)

		rt, err := f.svc.SubmitPayment(ctx, renterID, rentalID, onlineInput())
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPaymentPending, rt.Status)
		assert.Equal(t, "TRX-123", rt.TransactionRef)
		assert.NotEmpty(t, rt.PaymentProofKey)
	})

	t.Run("online payment without transaction ref", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		in := onlineInput()
		in.TransactionRef = ""
		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, in)
		assert.True(t, domain.IsValidation(err))
		f.rentalRepo.AssertNotCalled(t, "RecordPayment")
	})

	t.Run("online payment without proof leaves rental approved", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		in := onlineInput()
		in.Proof = nil
		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, in)
		assert.True(t, domain.IsValidation(err))
		f.rentalRepo.AssertNotCalled(t, "RecordPayment")
		f.blobStore.AssertNotCalled(t, "SaveFile")
	})

	t.Run("non-image proof rejected", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		in := onlineInput()
		in.ProofContentType = "application/pdf"
		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, in)
		assert.ErrorIs(t, err, domain.ErrFileRejected)
	})

	t.Run("oversize proof rejected", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		in := onlineInput()
		in.ProofSize = 6 * 1024 * 1024
		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, in)
		assert.ErrorIs(t, err, domain.ErrFileRejected)
	})

	t.Run("face-to-face needs no evidence", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)
		f.rentalRepo.On("RecordPayment", ctx, rentalID, domain.PaymentMethodFaceToFace, "", "").Return(nil)

		rt, err := f.svc.SubmitPayment(ctx, renterID, rentalID, PaymentInput{Method: domain.PaymentMethodFaceToFace})
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPaymentPending, rt.Status)
		f.blobStore.AssertNotCalled(t, "SaveFile")
	})

	t.Run("unknown payment method rejected", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, PaymentInput{Method: "crypto"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("payment on a pending rental fails", func(t *testing.T) {
		f := newRentalFixture()
		rt := approved()
		rt.Status = domain.RentalStatusPending
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(rt, nil)

		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, onlineInput())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("proof removed when the status update loses a race", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)
		f.blobStore.On("SaveFile", mock.AnythingOfType("string"), mock.Anything).Return(nil)
		f.rentalRepo.On("RecordPayment", ctx, rentalID, domain.PaymentMethodOnline, "TRX-123", mock.AnythingOfType("string")).Return(domain.ErrInvalidTransition)
		f.blobStore.On("DeleteFile", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := f.svc.SubmitPayment(ctx, renterID, rentalID, onlineInput())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.blobStore.AssertCalled(t, "DeleteFile", ctx, mock.AnythingOfType("string"))
	})

	t.Run("only the renter can submit payment", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(approved(), nil)

		_, err := f.svc.SubmitPayment(ctx, int32(100), rentalID, onlineInput())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRentalService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(100)
	rentalID := int32(5)

	t.Run("owner confirms a submitted payment", func(t *testing.T) {
		f := newRentalFixture()
		f.allowSideEffects()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(&domain.Rental{
			ID: rentalID, CameraID: 10, RenterID: 1, OwnerID: ownerID,
			Status: domain.RentalStatusPaymentPending, PickupTime: "10:00",
		}, nil)
		f.rentalRepo.On("TransitionStatus", ctx, rentalID, domain.RentalStatusPaymentPending, domain.RentalStatusPaymentConfirmed).Return(nil)

		rt, err := f.svc.ConfirmPayment(ctx, ownerID, rentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPaymentConfirmed, rt.Status)
	})

	t.Run("cannot confirm before payment is submitted", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(&domain.Rental{
			ID: rentalID, RenterID: 1, OwnerID: ownerID, Status: domain.RentalStatusApproved,
		}, nil)

		_, err := f.svc.ConfirmPayment(ctx, ownerID, rentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestRentalService_GetPaymentProofURL(t *testing.T) {
	ctx := context.Background()
	rentalID := int32(5)

	rt := &domain.Rental{
		ID: rentalID, RenterID: 1, OwnerID: 100,
		Status: domain.RentalStatusPaymentPending, PaymentProofKey: "proofs/1_payment_x.png",
	}

	t.Run("both parties can view the proof", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(rt, nil)
		f.blobStore.On("GenerateSignedDownloadURL", ctx, rt.PaymentProofKey, proofLinkTTL).Return("https://host/signed", nil)

		for _, userID := range []int32{1, 100} {
			url, err := f.svc.GetPaymentProofURL(ctx, userID, rentalID)
			require.NoError(t, err)
			assert.Equal(t, "https://host/signed", url)
		}
	})

	t.Run("third parties cannot", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(rt, nil)

		_, err := f.svc.GetPaymentProofURL(ctx, int32(42), rentalID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("no proof on record", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, rentalID).Return(&domain.Rental{
			ID: rentalID, RenterID: 1, OwnerID: 100, Status: domain.RentalStatusPaymentPending,
		}, nil)

		_, err := f.svc.GetPaymentProofURL(ctx, int32(1), rentalID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
