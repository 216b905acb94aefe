package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foliogen/foliogen/pkg/jwt"
	"github.com/foliogen/foliogen/pkg/logger"
	"github.com/foliogen/foliogen/pkg/otp"
	"github.com/foliogen/foliogen/pkg/password"
	"github.com/foliogen/foliogen/pkg/sanitizer"
	"github.com/foliogen/foliogen/pkg/validator"
)

// DefaultOTPTTL is the validity window of a one-time code, measured from the
// moment of issuance.
const DefaultOTPTTL = 10 * time.Minute

// Service orchestrates signup, email verification, login and password reset.
// All state lives in AccountStorage; the service itself is stateless and safe
// for concurrent use.
type Service struct {
	storage  AccountStorage
	hasher   *password.Hasher
	tokens   *jwt.Service
	notifier CodeNotifier
	throttle Throttle
	logger   *slog.Logger
	otpTTL   time.Duration
	strength validator.PasswordStrengthConfig
	now      func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithOTPTTL overrides the one-time code validity window.
func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.otpTTL = ttl
	}
}

// WithThrottle installs an attempt limiter for login and code-request flows.
func WithThrottle(t Throttle) Option {
	return func(s *Service) {
		if t != nil {
			s.throttle = t
		}
	}
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(cfg validator.PasswordStrengthConfig) Option {
	return func(s *Service) {
		s.strength = cfg
	}
}

// WithClock overrides the time source, letting tests pin expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates the auth service. Storage, hasher, token issuer and notifier
// are required; everything else has defaults.
func New(storage AccountStorage, hasher *password.Hasher, tokens *jwt.Service, notifier CodeNotifier, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		throttle: noopThrottle{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		otpTTL:   DefaultOTPTTL,
		strength: validator.PasswordStrengthConfig{
			MinLength:      6,
			MaxLength:      128,
			MinCharClasses: 2,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Signup registers a new account and sends a verification code.
//
// The account and its code are persisted before the notification goes out, so
// a delivery failure does not roll anything back: the result reports it via
// CodeDelivered and the user can request a resend.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*SignupResult, error) {
	email := sanitizer.NormalizeEmail(params.Email)
	name := sanitizer.TrimName(params.Name)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.StrongPassword("password", params.Password, s.strength),
		validator.NotCommonPassword("password", params.Password),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.otpTTL)
	account := &Account{
		ID:                       uuid.New(),
		Email:                    email,
		Name:                     name,
		PasswordHash:             hash,
		EmailVerified:            false,
		VerificationOTP:          &code,
		VerificationOTPExpiresAt: &expiresAt,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.storage.Insert(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	delivered := true
	if err := s.notifier.SendVerificationCode(ctx, email, name, code, s.otpTTL); err != nil {
		delivered = false
		s.logger.ErrorContext(ctx, "failed to send verification code",
			logger.AccountID(account.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	return &SignupResult{Account: account, CodeDelivered: delivered}, nil
}

// VerifyEmail checks a pending verification code and, on success, marks the
// account verified and issues a session.
//
// The account must still be unverified; a verified or unknown email yields
// ErrAccountNotFound without distinguishing the two. The storage-level
// conditional update makes the code single-use: of two concurrent calls with
// the same code only one consumes it, the other loses the race and also gets
// ErrAccountNotFound.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*Session, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := s.throttle.Allow(ctx, "verify:"+email); err != nil {
		return nil, err
	}

	account, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.EmailVerified {
		return nil, ErrAccountNotFound
	}

	if account.VerificationOTP == nil || !otp.Matches(code, *account.VerificationOTP) {
		return nil, ErrInvalidCode
	}
	if account.VerificationOTPExpiresAt == nil || s.now().After(*account.VerificationOTPExpiresAt) {
		return nil, ErrExpiredCode
	}

	consumed, err := s.storage.ConsumeVerificationOTP(ctx, account.ID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}
	if !consumed {
		return nil, ErrAccountNotFound
	}

	account.EmailVerified = true
	account.VerificationOTP = nil
	account.VerificationOTPExpiresAt = nil

	return s.issueSession(account)
}

// ResendVerification issues a fresh verification code for a pending account.
// The new code overwrites the previous one, which stops verifying immediately.
//
// The response never reveals whether the account exists or is already
// verified: both cases return nil without sending anything. Only storage
// failures propagate.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)

	if err := s.throttle.Allow(ctx, "resend:"+email); err != nil {
		return err
	}

	account, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account.EmailVerified {
		return nil
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.otpTTL)
	if err := s.storage.SetVerificationOTP(ctx, account.ID, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.notifier.SendVerificationCode(ctx, email, account.Name, code, s.otpTTL); err != nil {
		// The code is persisted; reporting the failure would leak account
		// existence, so log it and rely on another resend.
		s.logger.ErrorContext(ctx, "failed to send verification code",
			logger.AccountID(account.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	return nil
}

// Login authenticates email and password and issues a session.
//
// Unknown email and wrong password both return ErrInvalidCredentials, and the
// unknown-email path burns a dummy hash comparison so the two failures take
// comparable time. Verification state is not checked here: an unverified
// account can log in, and no "please verify" variant exists because it would
// reintroduce the enumeration signal the uniform error removes.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*Session, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := s.throttle.Allow(ctx, "login:"+email); err != nil {
		return nil, err
	}

	account, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.hasher.DummyCompare()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !s.hasher.Verify(plaintext, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(account)
}

// ForgotPassword starts a password reset by storing and sending a reset code.
// Like ResendVerification, it returns nil whether or not the account exists;
// only storage failures propagate.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)

	if err := s.throttle.Allow(ctx, "forgot:"+email); err != nil {
		return err
	}

	account, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.otpTTL)
	if err := s.storage.SetResetOTP(ctx, account.ID, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.notifier.SendPasswordResetCode(ctx, email, account.Name, code, s.otpTTL); err != nil {
		s.logger.ErrorContext(ctx, "failed to send password reset code",
			logger.AccountID(account.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	return nil
}

// ResetPassword completes a reset: it validates the code against the pending
// one and swaps in the new password hash in the same conditional update that
// clears the code. It does not log the user in; the caller logs in afterward.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.StrongPassword("password", newPassword, s.strength),
		validator.NotCommonPassword("password", newPassword),
	); err != nil {
		return err
	}

	if err := s.throttle.Allow(ctx, "reset:"+email); err != nil {
		return err
	}

	account, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if account.ResetOTP == nil || !otp.Matches(code, *account.ResetOTP) {
		return ErrInvalidCode
	}
	if account.ResetOTPExpiresAt == nil || s.now().After(*account.ResetOTPExpiresAt) {
		return ErrExpiredCode
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	consumed, err := s.storage.ConsumeResetOTP(ctx, account.ID, code, hash)
	if err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}
	if !consumed {
		return ErrInvalidCode
	}

	return nil
}

// Authorize re-validates a session token and loads its account. Handlers call
// this per request; the token alone is never trusted for anything beyond the
// identity it names.
func (s *Service) Authorize(ctx context.Context, token string) (*Account, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, jwt.ErrTokenInvalid
	}

	account, err := s.storage.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

func (s *Service) issueSession(account *Account) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(account.ID.String(), account.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}
