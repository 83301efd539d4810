package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/validation"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  []validation.Violation `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Itemizes validation failures under "errors".
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: ve.Violations}
	}

	// Echo's own errors (bind failures, 404 from router, rate limiting, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("http error")
			return he.Code, errorResponse{Message: "internal server error"}
		}
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{Message: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Message: "invalid or expired token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Message: "access forbidden"}
	case errors.Is(err, domain.ErrEnterpriseNotFound):
		return http.StatusNotFound, errorResponse{Message: "enterprise not found"}
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, errorResponse{Message: "admin not found"}
	case errors.Is(err, domain.ErrEnterpriseExists):
		return http.StatusConflict, errorResponse{Message: "enterprise email already registered"}
	case errors.Is(err, domain.ErrAdminExists):
		return http.StatusConflict, errorResponse{Message: "admin email already registered"}
	case errors.Is(err, domain.ErrFoundingYearInFuture):
		return http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  []validation.Violation{{Field: "foundingYear", Message: "foundingYear cannot be later than the current year"}},
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}
