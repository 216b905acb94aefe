package jwt

import "errors"

var (
	// ErrMissingSigningKey is returned when constructing a Service without a key.
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrFailedToSign indicates the token could not be signed.
	ErrFailedToSign = errors.New("failed to sign token")

	// ErrTokenInvalid covers malformed tokens, bad signatures and
	// unexpected signing algorithms.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned for a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)
