package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
)

// AuthService implements administrator registration, login and token resolution.
type AuthService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.AdminRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Admin{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", created.ID).Msg("admin registered")
	return created, nil
}

// Login verifies the credentials and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(admin.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// Authenticate verifies token and re-resolves the embedded id, so a token
// for a deleted administrator stops working.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Admin, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, fmt.Errorf("%w: admin no longer exists", domain.ErrUnauthorized)
		}
		return nil, err
	}
	return admin, nil
}

// EmailTaken backs the uniqueness rule of the registration pipeline.
func (s *AuthService) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrAdminNotFound):
		return false, nil
	default:
		return false, err
	}
}

// DefaultAdmin describes the administrator created at bootstrap.
type DefaultAdmin struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// EnsureDefaultAdmin creates the bootstrap administrator when it does not
// exist yet. It is a no-op on every later start.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, seed DefaultAdmin) error {
	if seed.Email == "" || seed.Password == "" {
		s.log.Warn().Msg("default admin not configured, skipping seed")
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, normalizeEmail(seed.Email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	_, err = s.Register(ctx, ports.RegisterAdminInput{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
		Phone:    seed.Phone,
	})
	if errors.Is(err, domain.ErrAdminExists) {
		// another instance seeded it between the lookup and the insert
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info().Str("email", seed.Email).Msg("default admin created")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
