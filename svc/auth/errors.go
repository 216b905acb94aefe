package auth

import "errors"

var (
	// ErrAccountNotFound covers both a missing account and one that is no
	// longer pending verification; the two are deliberately not distinguished.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned by Signup when the email is taken.
	ErrDuplicateAccount = errors.New("account with this email already exists")

	// ErrInvalidCode means the submitted one-time code does not match the
	// pending one.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrExpiredCode means the code matched but its 10-minute window passed.
	ErrExpiredCode = errors.New("verification code expired")

	// ErrInvalidCredentials is the uniform login failure: the same error for
	// an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTooManyAttempts is returned when the attempt limiter trips.
	ErrTooManyAttempts = errors.New("too many attempts, try again later")
)
