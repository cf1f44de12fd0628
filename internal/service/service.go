package service

import (
	"context"
	"io"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone string) (*domain.User, error)
	// SubmitIDDocument stores an identity document image and attaches it to
	// the account for admin review.
	SubmitIDDocument(ctx context.Context, userID int32, fileName, contentType string, size int64, file io.Reader) (*domain.User, error)
}

type CameraService interface {
	AddCamera(ctx context.Context, ownerID int32, camera *domain.Camera) error
	GetCamera(ctx context.Context, id int32) (*domain.Camera, error)
	UpdateCamera(ctx context.Context, ownerID int32, camera *domain.Camera) (*domain.Camera, error)
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Camera, int32, error)
	ListMyCameras(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Camera, int32, error)
}

type CartService interface {
	AddToCart(ctx context.Context, userID, cameraID int32) ([]domain.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, cameraID int32) ([]domain.CartItem, error)
	GetCart(ctx context.Context, userID int32) ([]domain.CartItem, error)
	ClearCart(ctx context.Context, userID int32) error
}

// AvailabilityChecker answers whether a set of cameras is free for an
// inclusive date range. Read-only; a query failure propagates rather than
// defaulting to available.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, cameraIDs []int32, start, end string) (bool, error)
}

// CheckoutInput carries the date range and contact details for a cart
// checkout.
type CheckoutInput struct {
	StartDate     string
	EndDate       string
	PickupTime    string
	RenterName    string
	RenterPhone   string
	RenterAddress string
}

// PaymentInput carries a renter's payment submission. Proof fields are only
// consulted for the online method.
type PaymentInput struct {
	Method           domain.PaymentMethod
	TransactionRef   string
	ProofFileName    string
	ProofContentType string
	ProofSize        int64
	Proof            io.Reader
}

type RentalService interface {
	// CheckoutCart converts the user's cart into one pending rental per item.
	// The whole batch succeeds or nothing is created; the cart is cleared
	// only after the batch commits.
	CheckoutCart(ctx context.Context, renterID int32, in CheckoutInput) ([]domain.Rental, error)

	Approve(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error)
	Reject(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error)
	Cancel(ctx context.Context, renterID, rentalID int32) (*domain.Rental, error)
	SubmitPayment(ctx context.Context, renterID, rentalID int32, in PaymentInput) (*domain.Rental, error)
	ConfirmPayment(ctx context.Context, ownerID, rentalID int32) (*domain.Rental, error)

	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListLendings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	GetPaymentProofURL(ctx context.Context, userID, rentalID int32) (string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type AdminService interface {
	ListUsers(ctx context.Context, role, status string) ([]domain.User, error)
	ApproveUser(ctx context.Context, adminID, userID int32) error
	BlockUser(ctx context.Context, adminID, userID int32, reason string) error
	GetIDDocumentURL(ctx context.Context, adminID, userID int32) (string, error)
}

type EmailService interface {
	SendRentalRequestNotification(ctx context.Context, ownerEmail, renterName, cameraName, startDate, endDate string) error
	SendRentalApprovalNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error
	SendRentalRejectionNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error
	SendRentalCancellationNotification(ctx context.Context, ownerEmail, renterName, cameraName string) error
	SendPaymentSubmittedNotification(ctx context.Context, ownerEmail, renterName, cameraName string, method domain.PaymentMethod) error
	SendPaymentConfirmedNotification(ctx context.Context, renterEmail, cameraName, pickupTime string) error
	SendPaymentReminder(ctx context.Context, renterEmail, cameraName string) error
	SendPickupReminder(ctx context.Context, email, cameraName, startDate string) error
	SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error
}
