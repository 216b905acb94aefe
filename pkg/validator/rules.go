package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	specialRegex   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	otpRegex       = regexp.MustCompile(`^[1-9][0-9]{5}$`)

	// Frequently compromised passwords rejected regardless of strength rules.
	commonPasswords = map[string]bool{
		"password":    true,
		"password1":   true,
		"password123": true,
		"123456":      true,
		"12345678":    true,
		"123456789":   true,
		"1234567890":  true,
		"qwerty":      true,
		"qwerty123":   true,
		"qwertyuiop":  true,
		"abc123":      true,
		"letmein":     true,
		"welcome":     true,
		"iloveyou":    true,
		"admin":       true,
		"admin123":    true,
		"root":        true,
		"secret":      true,
		"trustno1":    true,
		"111111":      true,
		"000000":      true,
	}
)

// Required validates that a string is not empty after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

// ValidEmail validates that a string is an addressable email for typical web
// use: parseable per RFC 5322 with a dotted, non-degenerate domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 {
				return false
			}
			local, domain := parts[0], parts[1]
			if local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// PasswordStrengthConfig controls StrongPassword requirements.
type PasswordStrengthConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // of: uppercase, lowercase, digit, special
}

// StrongPassword validates password length and character class diversity.
func StrongPassword(field, value string, cfg PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < cfg.MinLength || len(value) > cfg.MaxLength {
				return false
			}

			classes := 0
			if uppercaseRegex.MatchString(value) {
				classes++
			}
			if lowercaseRegex.MatchString(value) {
				classes++
			}
			if digitRegex.MatchString(value) {
				classes++
			}
			if specialRegex.MatchString(value) {
				classes++
			}
			return classes >= cfg.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"must be %d-%d characters with at least %d character types",
				cfg.MinLength, cfg.MaxLength, cfg.MinCharClasses,
			),
		},
	}
}

// NotCommonPassword rejects passwords from a list of frequently breached values.
func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !commonPasswords[strings.ToLower(value)]
		},
		Error: ValidationError{
			Field:   field,
			Message: "is too common, choose a different password",
		},
	}
}

// ValidOTP validates the shape of a one-time code: six digits, no leading zero.
func ValidOTP(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return otpRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a 6-digit code",
		},
	}
}
