package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account is one registered user, unique per normalized email.
//
// The one-time code fields are non-nil only while the matching flow is
// pending: a verification code between signup (or resend) and a successful
// VerifyEmail, a reset code between ForgotPassword and a successful
// ResetPassword. EmailVerified moves false to true exactly once and never
// reverts.
type Account struct {
	ID                       uuid.UUID
	Email                    string
	Name                     string
	PasswordHash             string
	EmailVerified            bool
	VerificationOTP          *string
	VerificationOTPExpiresAt *time.Time
	ResetOTP                 *string
	ResetOTPExpiresAt        *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// SignupParams carries the fields a new registration needs.
type SignupParams struct {
	Email    string
	Password string
	Name     string
}

// SignupResult reports the created account and whether the verification code
// reached the notification sender. A false CodeDelivered does not undo the
// signup; the code is persisted and the user can request a resend.
type SignupResult struct {
	Account       *Account
	CodeDelivered bool
}

// Session is a stateless signed credential. Nothing is stored server-side;
// logout is the client discarding its copy.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *Account
}
