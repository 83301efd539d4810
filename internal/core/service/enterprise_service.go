package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/query"
)

// EnterpriseService implements registration, listing, update and report
// export of enterprises.
type EnterpriseService struct {
	repo    ports.EnterpriseRepository
	reports ports.ReportGenerator
	logger  zerolog.Logger
	now     func() time.Time
}

// NewEnterpriseService returns an EnterpriseService. A nil now defaults to time.Now.
func NewEnterpriseService(repo ports.EnterpriseRepository, reports ports.ReportGenerator, logger zerolog.Logger, now func() time.Time) *EnterpriseService {
	if now == nil {
		now = time.Now
	}
	return &EnterpriseService{repo: repo, reports: reports, logger: logger, now: now}
}

// Register stores a new enterprise with its years of experience derived from
// the founding year.
func (s *EnterpriseService) Register(ctx context.Context, in ports.RegisterEnterpriseInput) (*domain.Enterprise, error) {
	now := s.now()
	if in.FoundingYear > now.Year() {
		return nil, domain.ErrFoundingYearInFuture
	}

	ts := now.UTC()
	created, err := s.repo.Create(ctx, &domain.Enterprise{
		Name:              strings.TrimSpace(in.Name),
		Email:             normalizeEmail(in.Email),
		Phone:             in.Phone,
		Address:           in.Address,
		Website:           in.Website,
		ImpactLevel:       in.ImpactLevel,
		FoundingYear:      in.FoundingYear,
		YearsOfExperience: domain.YearsOfExperience(in.FoundingYear, now),
		Category:          in.Category,
		Description:       in.Description,
		SocialMedia:       in.SocialMedia,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to register enterprise")
		return nil, err
	}

	s.logger.Info().Str("enterprise_id", created.ID).Str("category", created.Category).Msg("enterprise registered")
	projected := created.Project(now)
	return &projected, nil
}

// List returns one page of enterprises matching filter.
func (s *EnterpriseService) List(ctx context.Context, filter query.Filter, page query.Page) ([]domain.Enterprise, error) {
	now := s.now()
	records, err := s.repo.List(ctx, query.NewPlan(filter, page, now))
	if err != nil {
		return nil, fmt.Errorf("list enterprises: %w", err)
	}
	return query.Project(records, now), nil
}

// Update applies a partial update. The record's identity cannot change.
func (s *EnterpriseService) Update(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
	now := s.now()
	if patch.FoundingYear != nil && *patch.FoundingYear > now.Year() {
		return nil, domain.ErrFoundingYearInFuture
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("enterprise_id", id).Msg("enterprise updated")
	projected := updated.Project(now)
	return &projected, nil
}

// GenerateReport exports every enterprise matching filter, without
// pagination, and returns where the report can be downloaded.
func (s *EnterpriseService) GenerateReport(ctx context.Context, filter query.Filter) (*ports.ReportResult, error) {
	start := s.now()
	records, err := s.repo.List(ctx, query.NewUnpagedPlan(filter, start))
	if err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}

	res, err := s.reports.Generate(ctx, filter, query.Project(records, start))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate report")
		return nil, fmt.Errorf("generate report: %w", err)
	}

	s.logger.Info().Str("file", res.FileName).Int("rows", res.Rows).Msg("report generated")
	return res, nil
}

// EmailTaken reports whether another enterprise already uses email.
func (s *EnterpriseService) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return s.repo.EmailTaken(ctx, normalizeEmail(email), excludeID)
}
