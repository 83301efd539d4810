package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/query"
	"github.com/coperex/case-analysis/internal/core/validation"
)

// --- Request / Response types ---

type socialMediaRequest struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

type registerEnterpriseRequest struct {
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Address      string             `json:"address"`
	Website      string             `json:"website"`
	ImpactLevel  string             `json:"impactLevel"`
	FoundingYear int                `json:"foundingYear"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	SocialMedia  socialMediaRequest `json:"socialMedia"`
}

// candidate maps the request onto the stored shape so the schema tags of
// domain.Enterprise drive validation.
func (r registerEnterpriseRequest) candidate() domain.Enterprise {
	return domain.Enterprise{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		ImpactLevel:  domain.ImpactLevel(r.ImpactLevel),
		FoundingYear: r.FoundingYear,
		Category:     r.Category,
		Description:  r.Description,
		SocialMedia:  domain.SocialMedia(r.SocialMedia),
	}
}

func (r registerEnterpriseRequest) input() ports.RegisterEnterpriseInput {
	return ports.RegisterEnterpriseInput{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		ImpactLevel:  domain.ImpactLevel(r.ImpactLevel),
		FoundingYear: r.FoundingYear,
		Category:     r.Category,
		Description:  r.Description,
		SocialMedia:  domain.SocialMedia(r.SocialMedia),
	}
}

type updateEnterpriseRequest struct {
	Name         *string             `json:"name"`
	Email        *string             `json:"email"`
	Phone        *string             `json:"phone"`
	Address      *string             `json:"address"`
	Website      *string             `json:"website"`
	ImpactLevel  *string             `json:"impactLevel"`
	FoundingYear *int                `json:"foundingYear"`
	Category     *string             `json:"category"`
	Description  *string             `json:"description"`
	SocialMedia  *socialMediaRequest `json:"socialMedia"`
}

func (r updateEnterpriseRequest) patch() domain.EnterprisePatch {
	p := domain.EnterprisePatch{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		FoundingYear: r.FoundingYear,
		Category:     r.Category,
		Description:  r.Description,
	}
	if r.ImpactLevel != nil {
		level := domain.ImpactLevel(*r.ImpactLevel)
		p.ImpactLevel = &level
	}
	if r.SocialMedia != nil {
		sm := domain.SocialMedia(*r.SocialMedia)
		p.SocialMedia = &sm
	}
	return p
}

// listQuery holds the filters shared by the list and report endpoints.
type listQuery struct {
	Category          string `json:"category"`
	ImpactLevel       string `json:"impactLevel"       validate:"omitempty,oneof=Alto Medio Bajo"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"omitempty,min=0"`
	Sort              string `json:"sort"              validate:"omitempty,oneof=nameAZ nameZA experience"`
}

func (q listQuery) filter() query.Filter {
	return query.Filter{
		Category:             q.Category,
		ImpactLevel:          domain.ImpactLevel(q.ImpactLevel),
		MinYearsOfExperience: q.YearsOfExperience,
		Sort:                 query.Sort(q.Sort),
	}
}

type pageQuery struct {
	Limit  *int `json:"limite" validate:"omitempty,min=1,max=100"`
	Offset *int `json:"desde"  validate:"omitempty,min=0"`
}

func (q pageQuery) page() query.Page {
	var p query.Page
	if q.Limit != nil {
		p.Limit = *q.Limit
	}
	if q.Offset != nil {
		p.Offset = *q.Offset
	}
	return p
}

func readListQuery(c echo.Context, p *validation.Pipeline) listQuery {
	return listQuery{
		Category:          c.QueryParam("category"),
		ImpactLevel:       c.QueryParam("impactLevel"),
		YearsOfExperience: intQuery(c, p, "yearsOfExperience"),
		Sort:              c.QueryParam("sort"),
	}
}

func readPageQuery(c echo.Context, p *validation.Pipeline) pageQuery {
	return pageQuery{
		Limit:  intQuery(c, p, "limite"),
		Offset: intQuery(c, p, "desde"),
	}
}

// intQuery parses an optional integer query parameter. A malformed value is
// recorded as a violation on p and reported as absent.
func intQuery(c echo.Context, p *validation.Pipeline, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.Check(name, func(context.Context) error {
			return validation.Reject("%s must be an integer", name)
		})
		return nil
	}
	return &n
}

type registerEnterpriseResponse struct {
	Msg        string            `json:"msg"`
	Enterprise domain.Enterprise `json:"enterprise"`
}

type listEnterprisesResponse struct {
	Enterprises []domain.Enterprise `json:"enterprises"`
}

type updateEnterpriseResponse struct {
	Success    bool              `json:"success"`
	Msg        string            `json:"msg"`
	Enterprise domain.Enterprise `json:"enterprise"`
}

type reportResponse struct {
	Msg         string `json:"msg"`
	DownloadURL string `json:"downloadUrl"`
}
