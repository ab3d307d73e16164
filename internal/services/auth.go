package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"familyinvitations/internal/domain"
)

type authService struct {
	users       domain.SystemUserRepository
	hasher      domain.PasswordHasher
	issuer      domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService backed by the given user store,
// password hasher, and token issuer.
func NewAuthService(users domain.SystemUserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		users:       users,
		hasher:      hasher,
		issuer:      issuer,
		tokenExpiry: tokenExpiry,
	}
}

// Login authenticates an admin and persists the issued token on the user
// row. Unknown accounts, disabled accounts, and wrong passwords all map to
// ErrInvalidCredentials so the response does not reveal which failed.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.SystemUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user.Status != domain.UserEnabled {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.users.UpdateToken(ctx, user.ID, token); err != nil {
		return "", nil, fmt.Errorf("store token: %w", err)
	}
	user.Token = token
	return token, user, nil
}

// Logout clears the stored session token.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.users.UpdateToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
