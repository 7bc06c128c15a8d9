package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/repository"
	"renthub-backend/internal/security"
)

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}
