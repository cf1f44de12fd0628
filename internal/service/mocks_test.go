package service

import (
	"context"
	"io"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) CreateBatch(ctx context.Context, rentals []*domain.Rental) error {
	args := m.Called(ctx, rentals)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) FindConflicts(ctx context.Context, cameraIDs []int32, start, end string) ([]domain.Rental, error) {
	args := m.Called(ctx, cameraIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) TransitionStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockRentalRepo) RecordPayment(ctx context.Context, id int32, method domain.PaymentMethod, transactionRef, proofKey string) error {
	args := m.Called(ctx, id, method, transactionRef, proofKey)
	return args.Error(0)
}

func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListConfirmedStartingOn(ctx context.Context, date string) ([]domain.Rental, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockCameraRepo struct{ mock.Mock }

func (m *MockCameraRepo) Create(ctx context.Context, camera *domain.Camera) error {
	args := m.Called(ctx, camera)
	return args.Error(0)
}

func (m *MockCameraRepo) GetByID(ctx context.Context, id int32) (*domain.Camera, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Camera), args.Error(1)
}

func (m *MockCameraRepo) Update(ctx context.Context, camera *domain.Camera) error {
	args := m.Called(ctx, camera)
	return args.Error(0)
}

func (m *MockCameraRepo) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Camera, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Camera), args.Get(1).(int32), args.Error(2)
}

func (m *MockCameraRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Camera, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Camera), args.Get(1).(int32), args.Error(2)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateStatus(ctx context.Context, id int32, status domain.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, role string, status string) ([]domain.User, error) {
	args := m.Called(ctx, role, status)
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockCartStore struct{ mock.Mock }

func (m *MockCartStore) Add(ctx context.Context, userID int32, item domain.CartItem) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *MockCartStore) Remove(ctx context.Context, userID int32, cameraID int32) error {
	args := m.Called(ctx, userID, cameraID)
	return args.Error(0)
}

func (m *MockCartStore) List(ctx context.Context, userID int32) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartStore) Clear(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockBlobStorage struct{ mock.Mock }

func (m *MockBlobStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}

func (m *MockBlobStorage) GenerateSignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStorage) VerifyDownloadToken(key string, expiresAt int64, token string) error {
	args := m.Called(key, expiresAt, token)
	return args.Error(0)
}

func (m *MockBlobStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlobStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, renterName, cameraName, startDate, endDate string) error {
	args := m.Called(ctx, ownerEmail, renterName, cameraName, startDate, endDate)
	return args.Error(0)
}

func (m *MockEmailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error {
	args := m.Called(ctx, renterEmail, cameraName, ownerName)
	return args.Error(0)
}

func (m *MockEmailService) SendRentalRejectionNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error {
	args := m.Called(ctx, renterEmail, cameraName, ownerName)
	return args.Error(0)
}

func (m *MockEmailService) SendRentalCancellationNotification(ctx context.Context, ownerEmail, renterName, cameraName string) error {
	args := m.Called(ctx, ownerEmail, renterName, cameraName)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentSubmittedNotification(ctx context.Context, ownerEmail, renterName, cameraName string, method domain.PaymentMethod) error {
	args := m.Called(ctx, ownerEmail, renterName, cameraName, method)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentConfirmedNotification(ctx context.Context, renterEmail, cameraName, pickupTime string) error {
	args := m.Called(ctx, renterEmail, cameraName, pickupTime)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentReminder(ctx context.Context, renterEmail, cameraName string) error {
	args := m.Called(ctx, renterEmail, cameraName)
	return args.Error(0)
}

func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, cameraName, startDate string) error {
	args := m.Called(ctx, email, cameraName, startDate)
	return args.Error(0)
}

func (m *MockEmailService) SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error {
	args := m.Called(ctx, email, name, status, reason)
	return args.Error(0)
}
