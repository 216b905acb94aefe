package otp_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliogen/foliogen/pkg/otp"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("always six digits without leading zero", func(t *testing.T) {
		t.Parallel()

		for range 1000 {
			code, err := otp.Generate()
			require.NoError(t, err)
			require.Len(t, code, otp.Length)

			n, err := strconv.Atoi(code)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 100000)
			assert.LessOrEqual(t, n, 999999)
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]bool)
		for range 50 {
			code, err := otp.Generate()
			require.NoError(t, err)
			seen[code] = true
		}
		// 50 draws from 900k values colliding down to one is not plausible.
		assert.Greater(t, len(seen), 1)
	})
}

func TestMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, otp.Matches("123456", "123456"))
	assert.False(t, otp.Matches("123456", "123457"))
	assert.False(t, otp.Matches("", "123456"))
	assert.False(t, otp.Matches("12345", "12345"))
	assert.False(t, otp.Matches("1234567", "1234567"))
}
