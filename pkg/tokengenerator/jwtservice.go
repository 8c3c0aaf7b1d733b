package tokengenerator

import (
	"fmt"
	"net/http"
	"time"
)

// Token type constants
const (
	ACCESS_TOKEN_NAME  = "access_token"
	REFRESH_TOKEN_NAME = "refresh_token"
)

// DefaultRefreshCookieName is the cookie carrying the long-lived token.
const DefaultRefreshCookieName = "alchemist_refresh"

// Default token expiry durations
const (
	DefaultAccessTokenExpiry  = 7 * 24 * time.Hour
	DefaultRefreshTokenExpiry = 30 * 24 * time.Hour
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// JwtService provides JWT token generation and cookie management
type JwtService struct {
	TokenGenerator      TokenGenerator
	RefreshCookieSetter CookieSetter
	RefreshCookieName   string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// JwtServiceOption is a function that configures a JwtService
type JwtServiceOption func(*JwtService)

// WithRefreshCookie configures the name and attributes of the refresh cookie
func WithRefreshCookie(name string, cookieSetter CookieSetter) JwtServiceOption {
	return func(js *JwtService) {
		if name != "" {
			js.RefreshCookieName = name
		}
		js.RefreshCookieSetter = cookieSetter
	}
}

// WithAccessTokenExpiry sets the access token expiry duration
func WithAccessTokenExpiry(expiry time.Duration) JwtServiceOption {
	return func(js *JwtService) {
		js.AccessTokenExpiry = expiry
	}
}

// WithRefreshTokenExpiry sets the refresh token expiry duration
func WithRefreshTokenExpiry(expiry time.Duration) JwtServiceOption {
	return func(js *JwtService) {
		js.RefreshTokenExpiry = expiry
	}
}

// NewJwtService creates a new JwtService. Unless overridden, the refresh
// cookie is HttpOnly, SameSite=Lax, not Secure, and lives as long as the
// refresh token.
func NewJwtService(tokenGenerator TokenGenerator, options ...JwtServiceOption) *JwtService {
	js := &JwtService{
		TokenGenerator:     tokenGenerator,
		RefreshCookieName:  DefaultRefreshCookieName,
		AccessTokenExpiry:  DefaultAccessTokenExpiry,
		RefreshTokenExpiry: DefaultRefreshTokenExpiry,
	}

	for _, option := range options {
		option(js)
	}

	if js.RefreshCookieSetter == nil {
		js.RefreshCookieSetter = NewCookieSetter(true, false, js.RefreshTokenExpiry)
	}

	return js
}

// GenerateToken generates a token of the given kind for subject
func (js *JwtService) GenerateToken(tokenName, subject string, extraClaims map[string]interface{}) (string, time.Time, error) {
	var expiry time.Duration
	switch tokenName {
	case REFRESH_TOKEN_NAME:
		expiry = js.RefreshTokenExpiry
	default:
		expiry = js.AccessTokenExpiry
	}

	return js.TokenGenerator.GenerateToken(subject, expiry, extraClaims)
}

// CreateTokenPair mints the access and refresh tokens for subject
func (js *JwtService) CreateTokenPair(subject string) (*TokenPair, error) {
	accessToken, accessExpiry, err := js.GenerateToken(ACCESS_TOKEN_NAME, subject, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiry, err := js.GenerateToken(REFRESH_TOKEN_NAME, subject, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}

// SetRefreshTokenCookie writes the refresh token cookie
func (js *JwtService) SetRefreshTokenCookie(w http.ResponseWriter, tokenValue string, expire time.Time) error {
	return js.RefreshCookieSetter.SetCookie(w, js.RefreshCookieName, tokenValue, expire)
}
