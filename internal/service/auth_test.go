package service

import (
	"context"
	"testing"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	t.Run("buyer is approved immediately", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "buyer@test.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		svc := NewAuthService(userRepo, tokens)
		user, access, refresh, err := svc.Signup(ctx, "Buyer", "Buyer@Test.com", "555-0100", "secret-pass", domain.UserRoleBuyer)
		require.NoError(t, err)
		assert.Equal(t, "buyer@test.com", user.Email)
		assert.Equal(t, domain.AccountStatusApproved, user.Status)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, "secret-pass", user.PasswordHash)
	})

	t.Run("seller waits for admin approval", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "seller@test.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		svc := NewAuthService(userRepo, tokens)
		user, _, _, err := svc.Signup(ctx, "Seller", "seller@test.com", "", "secret-pass", domain.UserRoleSeller)
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusPending, user.Status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.User{ID: 1}, nil)

		svc := NewAuthService(userRepo, tokens)
		_, _, _, err := svc.Signup(ctx, "Someone", "taken@test.com", "", "secret-pass", domain.UserRoleBuyer)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		_, _, _, err := svc.Signup(ctx, "Someone", "a@test.com", "", "short", domain.UserRoleBuyer)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("admin role cannot self-register", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		_, _, _, err := svc.Signup(ctx, "Someone", "a@test.com", "", "secret-pass", domain.UserRoleAdmin)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &domain.User{
		ID: 1, Email: "user@test.com", PasswordHash: string(hash),
		Role: domain.UserRoleBuyer, Status: domain.AccountStatusApproved,
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(account, nil)

		svc := NewAuthService(userRepo, tokens)
		user, access, _, err := svc.Login(ctx, "user@test.com", "secret-pass")
		require.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(account, nil)

		svc := NewAuthService(userRepo, tokens)
		_, _, _, err := svc.Login(ctx, "user@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, domain.ErrNotFound)

		svc := NewAuthService(userRepo, tokens)
		_, _, _, err := svc.Login(ctx, "nobody@test.com", "secret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blocked account", func(t *testing.T) {
		blocked := *account
		blocked.Status = domain.AccountStatusBlocked
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(&blocked, nil)

		svc := NewAuthService(userRepo, tokens)
		_, _, _, err := svc.Login(ctx, "user@test.com", "secret-pass")
		assert.ErrorIs(t, err, ErrAccountBlocked)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	account := &domain.User{
		ID: 1, Email: "user@test.com",
		Role: domain.UserRoleBuyer, Status: domain.AccountStatusApproved,
	}

	t.Run("refresh token issues a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int32(1)).Return(account, nil)

		refresh, err := tokens.GenerateRefreshToken(1, "user@test.com")
		require.NoError(t, err)

		svc := NewAuthService(userRepo, tokens)
		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		access, err := tokens.GenerateAccessToken(1, "user@test.com", "buyer")
		require.NoError(t, err)

		svc := NewAuthService(userRepo, tokens)
		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
