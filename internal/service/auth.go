package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
	"github.com/Ubaid-2/Camera-rental/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrEmailTaken         = errors.New("email is already registered")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", "", domain.NewValidationError("email", "required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", "", domain.NewValidationError("name", "required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.NewValidationError("password", "must be at least 8 characters")
	}
	if role != domain.UserRoleBuyer && role != domain.UserRoleSeller {
		return nil, "", "", domain.NewValidationError("role", "must be buyer or seller")
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	// Sellers list physical assets, so their accounts wait for admin
	// verification. Buyers can rent immediately.
	status := domain.AccountStatusApproved
	if role == domain.UserRoleSeller {
		status = domain.AccountStatusPending
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        phone,
		Role:         role,
		Status:       status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.generateTokens(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if user.Status == domain.AccountStatusBlocked {
		return nil, "", "", ErrAccountBlocked
	}

	access, refresh, err := s.generateTokens(user)
	return user, access, refresh, err
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}
	if user.Status == domain.AccountStatusBlocked {
		return "", "", ErrAccountBlocked
	}

	return s.tokenPair(user)
}

func (s *authService) generateTokens(user *domain.User) (string, string, error) {
	return s.tokenPair(user)
}

func (s *authService) tokenPair(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
