package password

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for credential storage.
// Higher than bcrypt.DefaultCost (10) because password hashes here protect
// long-lived accounts and hashing happens only on auth-path requests.
const DefaultCost = 12

// Hasher hashes and verifies passwords with bcrypt.
// The zero value is not usable; construct with New.
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// Option configures a Hasher during construction.
type Option func(*Hasher)

// WithCost overrides the bcrypt cost. Values outside bcrypt's supported
// range are clamped by the bcrypt library itself.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		h.cost = cost
	}
}

// New creates a Hasher with the default cost of 12.
func New(opts ...Option) *Hasher {
	h := &Hasher{cost: DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives a salted digest from plaintext. Each call produces a distinct
// digest for the same input because bcrypt embeds a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant-time over the derived key.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// DummyCompare burns one bcrypt comparison against a throwaway digest.
// Callers use it on the unknown-account path so that "no such account" and
// "wrong password" take comparable time, which keeps login timing from
// leaking account existence.
func (h *Hasher) DummyCompare() {
	h.dummyOnce.Do(func() {
		// The plaintext is irrelevant; only the cost must match real digests.
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("foliogen.dummy.credential"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte("never-the-stored-password"))
}

// Cost extracts the work factor from a digest, mostly useful in tests.
func Cost(digest string) (int, error) {
	return bcrypt.Cost([]byte(digest))
}
