package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
)

// AdminKey is the echo context key holding the authenticated *domain.Admin.
const AdminKey = "admin"

var bearerPrefix = regexp.MustCompile(`^Bearer\s+`)

// Auth resolves the request token to an administrator and injects it into the
// context. The token is looked up in the body field "token", then the
// "token" query parameter, then the Authorization header.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := requestToken(c.Request())
			if err != nil {
				return err
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided in the request")
			}

			admin, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(AdminKey, admin)
			return next(c)
		}
	}
}

// AdminFrom returns the administrator injected by Auth, if any.
func AdminFrom(c echo.Context) (*domain.Admin, bool) {
	admin, ok := c.Get(AdminKey).(*domain.Admin)
	return admin, ok && admin != nil
}

func requestToken(r *http.Request) (string, error) {
	if token, err := bodyToken(r); err != nil || token != "" {
		return token, err
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return bearerPrefix.ReplaceAllString(token, ""), nil
	}
	return bearerPrefix.ReplaceAllString(r.Header.Get(echo.HeaderAuthorization), ""), nil
}

// bodyToken peeks at a JSON or urlencoded body for a "token" field and
// restores the body for the handler.
func bodyToken(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}
	ctype := r.Header.Get(echo.HeaderContentType)
	isJSON := strings.HasPrefix(ctype, echo.MIMEApplicationJSON)
	isForm := strings.HasPrefix(ctype, echo.MIMEApplicationForm)
	if !isJSON && !isForm {
		return "", nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var token string
	if isForm {
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return "", nil
		}
		token = values.Get("token")
	} else {
		var payload struct {
			Token string `json:"token"`
		}
		if json.Unmarshal(raw, &payload) != nil {
			return "", nil
		}
		token = payload.Token
	}
	return bearerPrefix.ReplaceAllString(token, ""), nil
}
