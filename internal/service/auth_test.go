package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
	"renthub-backend/internal/security"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           1,
		Email:        "renter@test.com",
		PasswordHash: string(hash),
		Role:         domain.UserRoleRenter,
	}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "renter@test.com").Return(user, nil)
		tokens.On("GenerateAccessToken", int64(1), "renter@test.com", "renter").Return("tok", nil)

		token, got, err := svc.Login(ctx, "renter@test.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
		assert.Equal(t, user, got)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "renter@test.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "renter@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "nobody@test.com").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@test.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
