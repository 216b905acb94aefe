// Package validator provides a small rule-combinator for input validation.
// Rules are composed with Apply, which runs every rule and aggregates all
// failures into a single ValidationErrors value so callers can report every
// problem with a request at once.
package validator
