package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
)

// Lookups and uniqueness.
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin already exists")
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	ErrEnterpriseExists   = errors.New("enterprise already exists")
)

// ErrFoundingYearInFuture is returned when an enterprise claims to be founded
// after the current year.
var ErrFoundingYearInFuture = errors.New("founding year cannot be later than the current year")
