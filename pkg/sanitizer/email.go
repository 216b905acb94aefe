package sanitizer

import (
	"regexp"
	"strings"
)

var dotRegex = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address so that lookups are
// case-insensitive. Consecutive dots in the local part are consolidated and
// leading/trailing dots stripped; invalid shapes are returned as-is so the
// validator can reject them with a proper message.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// TrimName collapses interior whitespace in a display name and trims the ends.
func TrimName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
