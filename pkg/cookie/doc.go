// Package cookie wraps net/http cookie handling with defaults suitable for
// session credentials: site-wide path, HTTP-only, SameSite=Lax, with Secure
// enabled per environment through options.
package cookie
