package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/foliogen/foliogen/pkg/pg"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it in
// tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements AccountStorage on the accounts table. The Consume
// methods use conditional UPDATEs so a code can be redeemed at most once even
// under concurrent requests.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates an AccountStorage backed by PostgreSQL.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, email, name, password_hash, email_verified,
	verification_otp, verification_otp_expires_at,
	reset_otp, reset_otp_expires_at, created_at, updated_at`

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (s *PostgresStore) Insert(ctx context.Context, account *Account) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		account.ID, account.Email, account.Name, account.PasswordHash, account.EmailVerified,
		account.VerificationOTP, account.VerificationOTPExpiresAt,
		account.ResetOTP, account.ResetOTPExpiresAt, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// SetVerificationOTP applies only while the account is unverified, which both
// keeps email_verified monotonic and guarantees a resent code replaces the
// pending one instead of resurrecting a finished verification.
func (s *PostgresStore) SetVerificationOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE accounts
		 SET verification_otp = $2, verification_otp_expires_at = $3, updated_at = now()
		 WHERE id = $1 AND email_verified = FALSE`,
		id, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *PostgresStore) SetResetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE accounts
		 SET reset_otp = $2, reset_otp_expires_at = $3, updated_at = now()
		 WHERE id = $1`,
		id, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ConsumeVerificationOTP is the single-use gate: the WHERE clause rechecks
// the code and the unverified flag, so of two racing calls only the first
// affects a row.
func (s *PostgresStore) ConsumeVerificationOTP(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE accounts
		 SET email_verified = TRUE, verification_otp = NULL,
		     verification_otp_expires_at = NULL, updated_at = now()
		 WHERE id = $1 AND verification_otp = $2 AND email_verified = FALSE`,
		id, code,
	)
	if err != nil {
		return false, fmt.Errorf("failed to consume verification code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ConsumeResetOTP swaps the password hash and clears the reset code in one
// conditional update.
func (s *PostgresStore) ConsumeResetOTP(ctx context.Context, id uuid.UUID, code, newPasswordHash string) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE accounts
		 SET password_hash = $3, reset_otp = NULL,
		     reset_otp_expires_at = NULL, updated_at = now()
		 WHERE id = $1 AND reset_otp = $2`,
		id, code, newPasswordHash,
	)
	if err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.EmailVerified,
		&a.VerificationOTP, &a.VerificationOTPExpiresAt,
		&a.ResetOTP, &a.ResetOTPExpiresAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}
