package config

import (
	"time"
)

// JWTConfig holds token signing and refresh cookie configuration
type JWTConfig struct {
	Secret             string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer             string `env:"JWT_ISSUER" env-default:"alchemist"`
	Audience           string `env:"JWT_AUDIENCE"`
	AccessTokenExpiry  string `env:"ACCESS_TOKEN_EXPIRY" env-default:"P7D"`
	RefreshTokenExpiry string `env:"REFRESH_TOKEN_EXPIRY" env-default:"P30D"`
	RefreshCookieName  string `env:"REFRESH_COOKIE_NAME" env-default:"alchemist_refresh"`
	CookieHttpOnly     bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure       bool   `env:"COOKIE_SECURE" env-default:"false"`
}

// ParseAccessTokenExpiry parses the access token expiry duration
func (j JWTConfig) ParseAccessTokenExpiry() (time.Duration, error) {
	return ParseDuration(j.AccessTokenExpiry)
}

// ParseRefreshTokenExpiry parses the refresh token expiry duration
func (j JWTConfig) ParseRefreshTokenExpiry() (time.Duration, error) {
	return ParseDuration(j.RefreshTokenExpiry)
}

func (j JWTConfig) validate() ValidationErrors {
	return CollectErrors(
		RequireMinLength("JWT_SECRET", j.Secret, 16),
		RequireDuration("ACCESS_TOKEN_EXPIRY", j.AccessTokenExpiry),
		RequireDuration("REFRESH_TOKEN_EXPIRY", j.RefreshTokenExpiry),
		RequireNonEmpty("REFRESH_COOKIE_NAME", j.RefreshCookieName),
	)
}
