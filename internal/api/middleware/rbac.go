package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/coperex/case-analysis/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, ok := AdminFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if !admin.HasRole(allowedRoles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
