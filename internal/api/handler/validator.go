package handler

import (
	"github.com/coperex/case-analysis/internal/core/validation"
)

// echoValidator adapts validation.Validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are returned as
// *validation.Error so the error handler can itemize them.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Check(i)
}
