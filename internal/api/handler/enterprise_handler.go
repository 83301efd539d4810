package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/api/metrics"
	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/validation"
)

// EnterpriseHandler handles HTTP requests for enterprise operations.
type EnterpriseHandler struct {
	service   ports.EnterpriseService
	validator *validation.Validator
	log       zerolog.Logger
}

func NewEnterpriseHandler(service ports.EnterpriseService, v *validation.Validator, log zerolog.Logger) *EnterpriseHandler {
	return &EnterpriseHandler{service: service, validator: v, log: log}
}

// emailAvailable rejects email when another enterprise already uses it.
func (h *EnterpriseHandler) emailAvailable(email, excludeID string) validation.CheckFunc {
	return func(ctx context.Context) error {
		taken, err := h.service.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return validation.Reject("the email %s is already registered", email)
		}
		return nil
	}
}

// Register handles POST /enterprise/registerEnterprise.
//
// @Summary      Register an enterprise
// @Tags         enterprise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerEnterpriseRequest  true  "Enterprise details"
// @Success      201   {object}  registerEnterpriseResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /enterprise/registerEnterprise [post]
func (h *EnterpriseHandler) Register(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req registerEnterpriseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.validator.NewPipeline().
		Struct(req.candidate()).
		Check("email", h.emailAvailable(req.Email, "")).
		Run(c.Request().Context())
	if err != nil {
		return err
	}

	enterprise, err := h.service.Register(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	metrics.EnterprisesRegisteredTotal.WithLabelValues(string(enterprise.ImpactLevel)).Inc()
	h.log.Info().Str("admin", admin.ID).Str("enterprise", enterprise.ID).Msg("enterprise registered by admin")

	return c.JSON(http.StatusCreated, registerEnterpriseResponse{
		Msg:        "enterprise registered successfully",
		Enterprise: *enterprise,
	})
}

// List handles GET /enterprise/list.
//
// @Summary      List enterprises
// @Tags         enterprise
// @Produce      json
// @Security     BearerAuth
// @Param        category           query     string  false  "Exact category"
// @Param        impactLevel        query     string  false  "Alto, Medio or Bajo"
// @Param        yearsOfExperience  query     int     false  "Minimum years of experience"
// @Param        sort               query     string  false  "nameAZ, nameZA or experience"
// @Param        limite             query     int     false  "Page size (1-100, default 15)"
// @Param        desde              query     int     false  "Offset"
// @Success      200                {object}  listEnterprisesResponse
// @Failure      400                {object}  map[string]any
// @Failure      401                {object}  map[string]any
// @Router       /enterprise/list [get]
func (h *EnterpriseHandler) List(c echo.Context) error {
	p := h.validator.NewPipeline()
	lq := readListQuery(c, p)
	pq := readPageQuery(c, p)
	if err := p.Struct(lq).Struct(pq).Run(c.Request().Context()); err != nil {
		return err
	}

	enterprises, err := h.service.List(c.Request().Context(), lq.filter(), pq.page())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEnterprisesResponse{Enterprises: enterprises})
}

// Update handles PUT /enterprise/updateEnterprise/:uid.
//
// @Summary      Update an enterprise
// @Tags         enterprise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string                   true  "Enterprise id"
// @Param        body  body      updateEnterpriseRequest  true  "Fields to change"
// @Success      200   {object}  updateEnterpriseResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /enterprise/updateEnterprise/{uid} [put]
func (h *EnterpriseHandler) Update(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}

	id := c.Param("uid")
	var req updateEnterpriseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := req.patch()
	var probe domain.Enterprise
	p := h.validator.NewPipeline()
	if patch.Empty() {
		p.Check("body", func(context.Context) error {
			return validation.Reject("at least one field must be provided")
		})
	} else {
		p.Partial(probe, patch.Apply(&probe)...)
	}
	if patch.Email != nil {
		p.Check("email", h.emailAvailable(*patch.Email, id))
	}
	if err := p.Run(c.Request().Context()); err != nil {
		return err
	}

	enterprise, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}

	metrics.EnterprisesUpdatedTotal.Inc()
	h.log.Info().Str("admin", admin.ID).Str("enterprise", enterprise.ID).Msg("enterprise updated by admin")

	return c.JSON(http.StatusOK, updateEnterpriseResponse{
		Success:    true,
		Msg:        "enterprise updated successfully",
		Enterprise: *enterprise,
	})
}

// GenerateReport handles GET /enterprise/generateReport.
//
// @Summary      Export enterprises to a spreadsheet
// @Tags         enterprise
// @Produce      json
// @Security     BearerAuth
// @Param        category           query     string  false  "Exact category"
// @Param        impactLevel        query     string  false  "Alto, Medio or Bajo"
// @Param        yearsOfExperience  query     int     false  "Minimum years of experience"
// @Param        sort               query     string  false  "nameAZ, nameZA or experience"
// @Success      200                {object}  reportResponse
// @Failure      400                {object}  map[string]any
// @Failure      401                {object}  map[string]any
// @Router       /enterprise/generateReport [get]
func (h *EnterpriseHandler) GenerateReport(c echo.Context) error {
	p := h.validator.NewPipeline()
	lq := readListQuery(c, p)
	if err := p.Struct(lq).Run(c.Request().Context()); err != nil {
		return err
	}

	res, err := h.service.GenerateReport(c.Request().Context(), lq.filter())
	if err != nil {
		metrics.ReportsGeneratedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("success").Inc()
	metrics.ReportRows.Observe(float64(res.Rows))

	return c.JSON(http.StatusOK, reportResponse{
		Msg:         "report generated successfully",
		DownloadURL: res.URL,
	})
}
