package config

import "time"

// LoginCodeConfig controls one-time login codes.
type LoginCodeConfig struct {
	// TTL is how long an issued code stays acceptable (ISO 8601 or Go duration)
	TTL string `env:"LOGIN_CODE_TTL" env-default:"PT10M"`

	// Debug echoes the plaintext code in the request-code response.
	// Never enable outside local development.
	Debug bool `env:"LOGIN_CODE_DEBUG" env-default:"false"`
}

// ParseTTL parses the code lifetime
func (l LoginCodeConfig) ParseTTL() (time.Duration, error) {
	return ParseDuration(l.TTL)
}

func (l LoginCodeConfig) validate() ValidationErrors {
	return CollectErrors(RequireDuration("LOGIN_CODE_TTL", l.TTL))
}
