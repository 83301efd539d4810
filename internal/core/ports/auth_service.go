package ports

import (
	"context"

	"github.com/coperex/case-analysis/internal/core/domain"
)

// RegisterAdminInput carries the fields of a new administrator.
type RegisterAdminInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService handles administrator registration, login and token resolution.
type AuthService interface {
	Register(ctx context.Context, input RegisterAdminInput) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) (string, *domain.Admin, error)
	// Authenticate resolves a bearer token to an existing administrator.
	Authenticate(ctx context.Context, token string) (*domain.Admin, error)
	// EmailTaken backs the uniqueness rule of the registration pipeline.
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// PasswordHasher hashes and verifies administrator passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(digest, plain string) bool
}

// TokenIssuer signs and verifies identity tokens.
type TokenIssuer interface {
	Issue(adminID string) (string, error)
	Verify(token string) (string, error)
}
