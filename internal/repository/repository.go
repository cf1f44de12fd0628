package repository

import (
	"context"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateStatus(ctx context.Context, id int32, status domain.AccountStatus) error
	List(ctx context.Context, role string, status string) ([]domain.User, error)
}

type CameraRepository interface {
	Create(ctx context.Context, camera *domain.Camera) error
	GetByID(ctx context.Context, id int32) (*domain.Camera, error)
	Update(ctx context.Context, camera *domain.Camera) error
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Camera, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Camera, int32, error)
}

type RentalRepository interface {
	// CreateBatch inserts all rentals in a single transaction. Either every
	// row is committed or none are.
	CreateBatch(ctx context.Context, rentals []*domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)

	// FindConflicts returns rentals for the given cameras whose status still
	// blocks availability and whose inclusive date range overlaps
	// [start, end].
	FindConflicts(ctx context.Context, cameraIDs []int32, start, end string) ([]domain.Rental, error)

	// TransitionStatus moves a rental from one status to another as a single
	// conditional update. It returns domain.ErrInvalidTransition when the
	// rental is no longer in the expected source status.
	TransitionStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error

	// RecordPayment transitions an approved rental to payment pending while
	// recording the payment details, as one conditional update.
	RecordPayment(ctx context.Context, id int32, method domain.PaymentMethod, transactionRef, proofKey string) error

	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)

	// Reminder queries used by scheduled jobs.
	ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
	ListConfirmedStartingOn(ctx context.Context, date string) ([]domain.Rental, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
