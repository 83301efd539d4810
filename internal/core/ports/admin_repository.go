package ports

import (
	"context"

	"github.com/coperex/case-analysis/internal/core/domain"
)

// AdminRepository defines persistence operations for administrators.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
