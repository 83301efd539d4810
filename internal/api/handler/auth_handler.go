package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coperex/case-analysis/internal/api/metrics"
	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/validation"
)

type AuthHandler struct {
	authService ports.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService ports.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validator: v}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=25"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Phone    string `json:"phone"    validate:"required,len=8"`
}

type registerResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userDetails struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Message     string      `json:"message"`
	UserDetails userDetails `json:"userDetails"`
}

// Register creates a new administrator account.
//
// @Summary      Register a new administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Administrator details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.validator.NewPipeline().
		Struct(req).
		Check("email", func(ctx context.Context) error {
			taken, err := h.authService.EmailTaken(ctx, req.Email)
			if err != nil {
				return err
			}
			if taken {
				return validation.Reject("the email %s is already registered", req.Email)
			}
			return nil
		}).
		Run(c.Request().Context())
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return err
	}

	admin, err := h.authService.Register(c.Request().Context(), ports.RegisterAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "admin registered successfully",
		Name:    admin.Name,
		Email:   admin.Email,
	})
}

// Login authenticates an administrator and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid"
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", result).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:     "login successful",
		UserDetails: userDetails{Token: token},
	})
}
