package ports

import (
	"context"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/query"
)

// RegisterEnterpriseInput carries the fields of a new enterprise.
type RegisterEnterpriseInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Website      string
	ImpactLevel  domain.ImpactLevel
	FoundingYear int
	Category     string
	Description  string
	SocialMedia  domain.SocialMedia
}

// ReportResult points at a generated report.
type ReportResult struct {
	FileName string
	URL      string
	Rows     int
}

// EnterpriseService defines the enterprise use cases.
type EnterpriseService interface {
	Register(ctx context.Context, input RegisterEnterpriseInput) (*domain.Enterprise, error)
	List(ctx context.Context, filter query.Filter, page query.Page) ([]domain.Enterprise, error)
	Update(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error)
	GenerateReport(ctx context.Context, filter query.Filter) (*ReportResult, error)
	// EmailTaken backs the uniqueness rule of the validation pipeline.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
}

// ReportGenerator materialises enterprise rows into a downloadable file.
type ReportGenerator interface {
	Generate(ctx context.Context, filter query.Filter, rows []domain.Enterprise) (*ReportResult, error)
}
