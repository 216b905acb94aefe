// Package config loads application configuration from environment variables
// into typed structs.
//
// It combines github.com/joho/godotenv (optional .env file loading) with
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each parsed
// configuration type for the lifetime of the process, so a Config struct can
// be requested from any number of places without re-reading the environment.
//
// Usage:
//
//	type ServerConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// MustLoad panics on failure and is intended for startup-critical
// configuration where the process cannot run without it.
package config
