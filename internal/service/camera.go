package service

import (
	"context"
	"strings"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
)

type cameraService struct {
	cameraRepo repository.CameraRepository
	userRepo   repository.UserRepository
}

func NewCameraService(cameraRepo repository.CameraRepository, userRepo repository.UserRepository) CameraService {
	return &cameraService{cameraRepo: cameraRepo, userRepo: userRepo}
}

func (s *cameraService) AddCamera(ctx context.Context, ownerID int32, camera *domain.Camera) error {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner.Status != domain.AccountStatusApproved {
		return domain.ErrUnauthorized
	}
	if err := validateCamera(camera); err != nil {
		return err
	}
	camera.OwnerID = ownerID
	camera.Available = true
	return s.cameraRepo.Create(ctx, camera)
}

func (s *cameraService) GetCamera(ctx context.Context, id int32) (*domain.Camera, error) {
	camera, err := s.cameraRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByID(ctx, camera.OwnerID); err == nil {
		camera.Owner = owner
	}
	return camera, nil
}

func (s *cameraService) UpdateCamera(ctx context.Context, ownerID int32, camera *domain.Camera) (*domain.Camera, error) {
	existing, err := s.cameraRepo.GetByID(ctx, camera.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCamera(camera); err != nil {
		return nil, err
	}

	existing.Name = camera.Name
	existing.Description = camera.Description
	existing.PricePerDayCents = camera.PricePerDayCents
	existing.Available = camera.Available
	if camera.ImageKey != "" {
		existing.ImageKey = camera.ImageKey
	}
	if err := s.cameraRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *cameraService) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Camera, int32, error) {
	return s.cameraRepo.ListAvailable(ctx, page, pageSize)
}

func (s *cameraService) ListMyCameras(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Camera, int32, error) {
	return s.cameraRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func validateCamera(c *domain.Camera) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	if c.PricePerDayCents <= 0 {
		return domain.NewValidationError("price_per_day_cents", "must be positive")
	}
	return nil
}
