package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStorage is the persistence contract the service depends on.
//
// The Consume methods are conditional updates: they mutate the row only when
// the stored code still matches (and, for verification, the account is still
// unverified) and report whether a row changed. That conditional write, not
// application-level locking, is what makes every one-time code single-use
// under concurrent requests.
type AccountStorage interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, account *Account) error

	// SetVerificationOTP replaces any pending verification code. It only
	// applies while the account is unverified, keeping EmailVerified monotonic.
	SetVerificationOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// SetResetOTP replaces any pending password reset code.
	SetResetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// ConsumeVerificationOTP marks the account verified and clears the code,
	// provided the code still matches and the account is still unverified.
	ConsumeVerificationOTP(ctx context.Context, id uuid.UUID, code string) (bool, error)

	// ConsumeResetOTP stores the new password hash and clears the reset code,
	// provided the code still matches.
	ConsumeResetOTP(ctx context.Context, id uuid.UUID, code, newPasswordHash string) (bool, error)
}

// CodeNotifier delivers one-time codes. The service only depends on the
// success/failure signal; formatting and transport live behind it.
type CodeNotifier interface {
	SendVerificationCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error
	SendPasswordResetCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error
}

// Throttle rate-limits a keyed action. Allow returns ErrTooManyAttempts (or
// an error wrapping it) when the caller must back off.
type Throttle interface {
	Allow(ctx context.Context, key string) error
}

// noopThrottle is the default when no limiter is configured.
type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) error { return nil }
