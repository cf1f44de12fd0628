package service

import (
	"context"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/logger"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
	"github.com/Ubaid-2/Camera-rental/internal/storage"
)

type adminService struct {
	userRepo  repository.UserRepository
	blobStore storage.BlobStorage
	emailSvc  EmailService
}

func NewAdminService(userRepo repository.UserRepository, blobStore storage.BlobStorage, emailSvc EmailService) AdminService {
	return &adminService{userRepo: userRepo, blobStore: blobStore, emailSvc: emailSvc}
}

func (s *adminService) ListUsers(ctx context.Context, role, status string) ([]domain.User, error) {
	return s.userRepo.List(ctx, role, status)
}

func (s *adminService) ApproveUser(ctx context.Context, adminID, userID int32) error {
	return s.setStatus(ctx, adminID, userID, domain.AccountStatusApproved, "")
}

func (s *adminService) BlockUser(ctx context.Context, adminID, userID int32, reason string) error {
	return s.setStatus(ctx, adminID, userID, domain.AccountStatusBlocked, reason)
}

func (s *adminService) setStatus(ctx context.Context, adminID, userID int32, status domain.AccountStatus, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == domain.UserRoleAdmin {
		return domain.ErrUnauthorized
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	if err := s.emailSvc.SendAccountStatusNotification(ctx, user.Email, user.Name, string(status), reason); err != nil {
		logger.Warn("Failed to send account status email", "user_id", userID, "error", err)
	}
	return nil
}

func (s *adminService) GetIDDocumentURL(ctx context.Context, adminID, userID int32) (string, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.IDDocumentKey == "" {
		return "", domain.ErrNotFound
	}
	return s.blobStore.GenerateSignedDownloadURL(ctx, user.IDDocumentKey, proofLinkTTL)
}

func (s *adminService) requireAdmin(ctx context.Context, adminID int32) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role != domain.UserRoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}
