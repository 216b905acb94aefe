// Package password wraps bcrypt for at-rest credential storage.
//
// It exposes a Hasher with a configurable work factor (default cost 12) and a
// DummyCompare helper that lets callers equalize response timing between
// known and unknown accounts during authentication.
package password
