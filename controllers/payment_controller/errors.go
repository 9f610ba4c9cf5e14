package payment_controller

import "errors"

var (
	// ErrSignatureMismatch means the gateway callback signature did not match
	// the one computed with the shared secret. Nothing may be persisted when
	// this is returned.
	ErrSignatureMismatch = errors.New("payment signature mismatch")

	// ErrTokenExhausted means booking creation kept colliding on tokens past
	// the retry budget.
	ErrTokenExhausted = errors.New("could not allocate a unique booking token")
)
