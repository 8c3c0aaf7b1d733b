// Package config loads the Alchemist API configuration from the environment.
//
// Each concern has its own env-tagged struct read by cleanenv; durations are
// ISO 8601 ("PT10M", "P30D") or Go syntax ("10m"). A .env file, when present,
// is loaded first with godotenv and never overrides variables already set.
package config
