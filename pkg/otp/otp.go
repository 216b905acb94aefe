package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strconv"
)

// Length is the number of digits in a generated code.
const Length = 6

// ErrFailedToGenerate is returned when the random source is unavailable.
var ErrFailedToGenerate = errors.New("failed to generate one-time code")

// span covers [100000, 999999]: always six digits, never a leading zero,
// so codes survive copy/paste and numeric form fields without ambiguity.
var span = big.NewInt(900000)

// Generate returns a uniformly random 6-digit code from crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// Matches compares a submitted code against the stored one in constant time.
func Matches(submitted, stored string) bool {
	if len(submitted) != Length || len(stored) != Length {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
