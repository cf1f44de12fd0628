package cart

import (
	"context"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
)

// Store holds a user's cart: an ordered list of camera snapshots, unique by
// camera id, persisted under a single session-scoped key.
type Store interface {
	Add(ctx context.Context, userID int32, item domain.CartItem) error
	Remove(ctx context.Context, userID int32, cameraID int32) error
	List(ctx context.Context, userID int32) ([]domain.CartItem, error)
	Clear(ctx context.Context, userID int32) error
}
