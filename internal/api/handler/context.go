package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/coperex/case-analysis/internal/api/middleware"
	"github.com/coperex/case-analysis/internal/core/domain"
)

// currentAdmin returns the administrator injected by the Auth middleware.
// A missing admin means the route was registered without the guard.
func currentAdmin(c echo.Context) (*domain.Admin, error) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return admin, nil
}
