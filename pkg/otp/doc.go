// Package otp generates the short-lived numeric codes mailed to users during
// email verification and password reset. Codes are drawn uniformly from
// [100000, 999999] using crypto/rand and compared in constant time.
package otp
