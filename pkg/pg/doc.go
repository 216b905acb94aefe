// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations, a health probe, and error helpers
// for classifying driver errors (not found, duplicate key) in business logic.
//
// Config fields are populated from PG_* environment variables via
// github.com/caarlos0/env; see the struct tags for names and defaults.
package pg
