package domain

import "errors"

// Sentinel errors shared across services and repositories. Services wrap
// lower-level failures with fmt.Errorf("...: %w", err); the delivery layer
// maps these sentinels to HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Registration conflicts. Both map to HTTP 409.
	ErrAlreadyRegistered = errors.New("already registered for this conference")
	ErrNoSeatsAvailable  = errors.New("there are no seats available")

	ErrAlreadyInWishlist = errors.New("session already saved to wishlist")
)
