package service

import "errors"

// Service-layer error kinds. Handlers translate these to HTTP statuses;
// anything not wrapping one of them is treated as an internal error.
var (
	// Authentication failures (401). Deliberately a single error for both
	// unknown users and bad passwords to resist user enumeration, and for
	// both unknown and expired refresh tokens.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	// Validation failures (400)
	ErrWeakPassword   = errors.New("password does not meet the security policy")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be a positive integer")

	// Missing entities (404)
	ErrNotFound = errors.New("record not found")

	// Conflicts (409)
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")
	ErrDuplicateSupplier      = errors.New("a supplier with this license number or email already exists")
	ErrSupplierHasDrugs       = errors.New("cannot delete supplier with associated drugs")
	ErrDuplicateBatch         = errors.New("a stock batch with this number already exists for the drug")
)
