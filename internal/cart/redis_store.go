package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps each cart as a JSON-encoded list under one key with a
// session TTL. Load on read, save on every mutation.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func cartKey(userID int32) string { return fmt.Sprintf("cart:%d", userID) }

func (s *redisStore) Add(ctx context.Context, userID int32, item domain.CartItem) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.CameraID == item.CameraID {
			return domain.ErrAlreadyInCart
		}
	}
	return s.save(ctx, userID, append(items, item))
}

func (s *redisStore) Remove(ctx context.Context, userID int32, cameraID int32) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.CameraID != cameraID {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return s.Clear(ctx, userID)
	}
	return s.save(ctx, userID, kept)
}

func (s *redisStore) List(ctx context.Context, userID int32) ([]domain.CartItem, error) {
	b, err := s.rdb.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *redisStore) Clear(ctx context.Context, userID int32) error {
	return s.rdb.Del(ctx, cartKey(userID)).Err()
}

func (s *redisStore) save(ctx context.Context, userID int32, items []domain.CartItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(userID), b, s.ttl).Err()
}
