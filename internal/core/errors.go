package core

import "errors"

// Sentinel errors for every recoverable validation failure. Callers match
// with errors.Is; services wrap these with context via fmt.Errorf and %w.
// Nothing here is fatal; the worst case is a rejected mutation.
var (
	// Authentication.
	ErrNotFound        = errors.New("not found")
	ErrUserDeactivated = errors.New("user is deactivated")
	ErrWrongSecret     = errors.New("incorrect password")

	// Authorization. Every mutating service operation checks the acting
	// identity itself rather than trusting the adapter.
	ErrPermissionDenied = errors.New("permission denied")

	// Orders.
	ErrPartNotSelected   = errors.New("part not selected")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("order is no longer pending")
	ErrStaleReference    = errors.New("referenced part no longer exists")

	// Locations.
	ErrDuplicateLocation   = errors.New("location already exists")
	ErrProtectedLocation   = errors.New("location cannot be removed")
	ErrRemovalNotConfirmed = errors.New("removal not confirmed")

	// User administration.
	ErrMissingName  = errors.New("name is required")
	ErrMissingEmail = errors.New("email is required")
	ErrInvalidEmail = errors.New("email format is invalid")
	ErrEmailTaken   = errors.New("email is already in use")
)
