package service

import (
	"context"

	"github.com/Ubaid-2/Camera-rental/internal/cart"
	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
)

type cartService struct {
	store      cart.Store
	cameraRepo repository.CameraRepository
}

func NewCartService(store cart.Store, cameraRepo repository.CameraRepository) CartService {
	return &cartService{store: store, cameraRepo: cameraRepo}
}

func (s *cartService) AddToCart(ctx context.Context, userID, cameraID int32) ([]domain.CartItem, error) {
	camera, err := s.cameraRepo.GetByID(ctx, cameraID)
	if err != nil {
		return nil, err
	}
	if !camera.Available {
		return nil, domain.NewValidationError("camera_id", "camera is not listed as available")
	}
	if camera.OwnerID == userID {
		return nil, domain.NewValidationError("camera_id", "cannot rent your own camera")
	}

	item := domain.CartItem{
		CameraID:         camera.ID,
		OwnerID:          camera.OwnerID,
		Name:             camera.Name,
		PricePerDayCents: camera.PricePerDayCents,
	}
	if err := s.store.Add(ctx, userID, item); err != nil {
		return nil, err
	}
	return s.store.List(ctx, userID)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, cameraID int32) ([]domain.CartItem, error) {
	if err := s.store.Remove(ctx, userID, cameraID); err != nil {
		return nil, err
	}
	return s.store.List(ctx, userID)
}

func (s *cartService) GetCart(ctx context.Context, userID int32) ([]domain.CartItem, error) {
	return s.store.List(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID int32) error {
	return s.store.Clear(ctx, userID)
}
