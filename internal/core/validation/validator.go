// Package validation implements the request validation pipeline and the
// schema checks shared with the storage layer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the rules used across the
// service. It is safe for concurrent use.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New returns a Validator whose year checks use now as the current time.
// A nil now defaults to time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}

	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.v.RegisterValidation("strongpassword", isStrongPassword)
	_ = val.v.RegisterValidation("notfuture", val.isNotFutureYear)
	return val
}

// Struct validates every field of s and returns the first failing rule per field.
func (val *Validator) Struct(s any) []Violation {
	return violations(val.v.Struct(s))
}

// Partial validates only the named fields (Go field names) of s.
func (val *Validator) Partial(s any, fields ...string) []Violation {
	if len(fields) == 0 {
		return nil
	}
	return violations(val.v.StructPartial(s, fields...))
}

// Var validates a single value against tag, reporting failures under field.
func (val *Validator) Var(field string, value any, tag string) *Violation {
	err := val.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &Violation{Field: field, Message: message(field, ve[0])}
	}
	return &Violation{Field: field, Message: err.Error()}
}

// Check validates s against the schema and returns an *Error when any rule fails.
func (val *Validator) Check(s any) error {
	if vs := val.Struct(s); len(vs) > 0 {
		return &Error{Violations: vs}
	}
	return nil
}

// CheckPartial is Check restricted to the named fields.
func (val *Validator) CheckPartial(s any, fields ...string) error {
	if vs := val.Partial(s, fields...); len(vs) > 0 {
		return &Error{Violations: vs}
	}
	return nil
}

func (val *Validator) isNotFutureYear(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(val.now().Year())
	default:
		return false
	}
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

// StrongPassword reports whether pw has at least 8 characters including a
// lowercase letter, an uppercase letter, a digit and a symbol.
func StrongPassword(pw string) bool {
	if len([]rune(pw)) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func violations(err error) []Violation {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []Violation{{Message: err.Error()}}
	}
	out := make([]Violation, 0, len(ve))
	for _, fe := range ve {
		field := fieldPath(fe)
		out = append(out, Violation{Field: field, Message: message(field, fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// message converts a single FieldError into a human-readable message.
func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "http_url", "url":
		return field + " must be a valid http(s) URL"
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "notfuture":
		return field + " cannot be later than the current year"
	case "strongpassword":
		return field + " must have at least 8 characters, one lowercase, one uppercase, one number and one symbol"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
