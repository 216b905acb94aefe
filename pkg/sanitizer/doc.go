// Package sanitizer normalizes untrusted user input before validation and
// storage. Sanitizing is lossy on purpose: it fixes common input mistakes
// (casing, stray whitespace) but never attempts to repair invalid values.
package sanitizer
