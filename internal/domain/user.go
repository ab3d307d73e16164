package domain

import (
	"context"
	"errors"
	"time"
)

// SystemUser status values.
const (
	UserDisabled = 0
	UserEnabled  = 1
)

// Sentinel errors for auth operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SystemUser is an administrator account. Token holds the currently issued
// session token, or "" when logged out.
// swagger:model SystemUser
type SystemUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Status       int    `json:"status"`
	Token        string `json:"-"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// SystemUserRepository defines the interface for admin account storage
type SystemUserRepository interface {
	Create(ctx context.Context, u *SystemUser) error
	GetByEmail(ctx context.Context, email string) (*SystemUser, error)
	GetByID(ctx context.Context, id string) (*SystemUser, error)
	// UpdateToken stores the issued session token on the user row ("" clears it).
	UpdateToken(ctx context.Context, id, token string) error
}

// AuthService defines admin login and logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *SystemUser, err error)
	Logout(ctx context.Context, userID string) error
}
