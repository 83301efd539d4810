package ports

import (
	"context"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/query"
)

// EnterpriseRepository defines persistence operations for enterprises.
type EnterpriseRepository interface {
	Create(ctx context.Context, e *domain.Enterprise) (*domain.Enterprise, error)
	// EmailTaken reports whether another enterprise already uses email.
	// excludeID, when non-empty, is ignored (the record being updated).
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// Update applies patch and returns the stored record, or
	// domain.ErrEnterpriseNotFound when id does not resolve.
	Update(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error)
	// List returns the records selected by plan in plan order.
	List(ctx context.Context, plan query.Plan) ([]domain.Enterprise, error)
}
