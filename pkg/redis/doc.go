// Package redis connects to a Redis server with retries and exposes a health
// probe. The client backs the login and code-request attempt limiter.
//
// Config fields are populated from REDIS_* environment variables via
// github.com/caarlos0/env.
package redis
