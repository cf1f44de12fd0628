package service

import (
	"context"
	"testing"

	"github.com/Ubaid-2/Camera-rental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	userID := int32(1)

	camera := &domain.Camera{
		ID: 10, OwnerID: 100, Name: "Canon R5", PricePerDayCents: 1000, Available: true,
	}

	t.Run("snapshots the camera into the cart", func(t *testing.T) {
		store := new(MockCartStore)
		cameraRepo := new(MockCameraRepo)
		cameraRepo.On("GetByID", ctx, int32(10)).Return(camera, nil)

		want := domain.CartItem{CameraID: 10, OwnerID: 100, Name: "Canon R5", PricePerDayCents: 1000}
		store.On("Add", ctx, userID, want).Return(nil)
		store.On("List", ctx, userID).Return([]domain.CartItem{want}, nil)

		svc := NewCartService(store, cameraRepo)
		items, err := svc.AddToCart(ctx, userID, 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.CartItem{want}, items)
	})

	t.Run("unavailable camera rejected", func(t *testing.T) {
		unlisted := *camera
		unlisted.Available = false
		store := new(MockCartStore)
		cameraRepo := new(MockCameraRepo)
		cameraRepo.On("GetByID", ctx, int32(10)).Return(&unlisted, nil)

		svc := NewCartService(store, cameraRepo)
		_, err := svc.AddToCart(ctx, userID, 10)
		assert.True(t, domain.IsValidation(err))
		store.AssertNotCalled(t, "Add")
	})

	t.Run("cannot rent your own camera", func(t *testing.T) {
		store := new(MockCartStore)
		cameraRepo := new(MockCameraRepo)
		cameraRepo.On("GetByID", ctx, int32(10)).Return(camera, nil)

		svc := NewCartService(store, cameraRepo)
		_, err := svc.AddToCart(ctx, int32(100), 10)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("duplicate add surfaces the store error", func(t *testing.T) {
		store := new(MockCartStore)
		cameraRepo := new(MockCameraRepo)
		cameraRepo.On("GetByID", ctx, int32(10)).Return(camera, nil)
		store.On("Add", ctx, userID, cartItemOf(camera)).Return(domain.ErrAlreadyInCart)

		svc := NewCartService(store, cameraRepo)
		_, err := svc.AddToCart(ctx, userID, 10)
		assert.ErrorIs(t, err, domain.ErrAlreadyInCart)
	})
}

func cartItemOf(c *domain.Camera) domain.CartItem {
	return domain.CartItem{CameraID: c.ID, OwnerID: c.OwnerID, Name: c.Name, PricePerDayCents: c.PricePerDayCents}
}
