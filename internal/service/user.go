package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
	"github.com/Ubaid-2/Camera-rental/internal/storage"

	"github.com/google/uuid"
)

type userService struct {
	userRepo  repository.UserRepository
	blobStore storage.BlobStorage
}

func NewUserService(userRepo repository.UserRepository, blobStore storage.BlobStorage) UserService {
	return &userService{userRepo: userRepo, blobStore: blobStore}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		user.Name = name
	}
	if strings.TrimSpace(phone) != "" {
		user.Phone = phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SubmitIDDocument(ctx context.Context, userID int32, fileName, contentType string, size int64, file io.Reader) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext, err := storage.ValidateImage(contentType, size)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("documents/%d_id_%s%s", userID, uuid.New().String(), ext)
	if err := s.blobStore.SaveFile(key, file); err != nil {
		return nil, fmt.Errorf("upload identity document: %w", err)
	}

	user.IDDocumentKey = key
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
