package service

import "errors"

// Sentinel errors double as the client-facing messages; the handler layer
// maps them to HTTP status codes.
var (
	// validation (400)
	ErrMissingFields     = errors.New("All fields required")
	ErrPasswordTooShort  = errors.New("Password min 6 chars")
	ErrTitleDateRequired = errors.New("Title and date required")
	ErrBadStatus         = errors.New("Invalid status")
	ErrBadTransition     = errors.New("Illegal status transition")

	// unauthorized (401)
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// forbidden (403)
	ErrForbidden       = errors.New("Forbidden")
	ErrOnlyAdminStatus = errors.New("Only admin can change status")
	ErrEditNotPending  = errors.New("Can only edit pending")

	// not found (404)
	ErrNotFound = errors.New("Not found")

	// conflict (409)
	ErrEmailTaken = errors.New("Email exists")
)
