package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliogen/foliogen/pkg/validator"
)

var strength = validator.PasswordStrengthConfig{
	MinLength:      8,
	MaxLength:      128,
	MinCharClasses: 2,
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("nil on success", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Ann"),
			validator.ValidEmail("email", "a@x.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", ""),
			validator.ValidEmail("email", "nope"),
		)
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		ve := err.(validator.ValidationErrors)
		assert.Len(t, ve, 2)
		assert.True(t, ve.Has("name"))
		assert.True(t, ve.Has("email"))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "user+tag@example.co.uk", "a.b@sub.domain.org"}
	invalid := []string{"", "not-an-email", "user@", "@example.com", "a@nodot", "a@.com", "a@com."}

	for _, email := range valid {
		t.Run("valid "+email, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)))
		})
	}
	for _, email := range invalid {
		t.Run("invalid "+email, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, validator.Apply(validator.ValidEmail("email", email)))
		})
	}
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"letters and digits", "secret12", true},
		{"mixed case", "Secretpass", true},
		{"too short", "Ab1", false},
		{"single class", "lowercaseonly", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validator.Apply(validator.StrongPassword("password", tc.password, strength))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNotCommonPassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, validator.Apply(validator.NotCommonPassword("password", "Password123")))
	assert.NoError(t, validator.Apply(validator.NotCommonPassword("password", "quite-unusual-42")))
}

func TestValidOTP(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.ValidOTP("code", "123456")))
	assert.Error(t, validator.Apply(validator.ValidOTP("code", "012345")))
	assert.Error(t, validator.Apply(validator.ValidOTP("code", "12345")))
	assert.Error(t, validator.Apply(validator.ValidOTP("code", "1234567")))
	assert.Error(t, validator.Apply(validator.ValidOTP("code", "12a456")))
}
