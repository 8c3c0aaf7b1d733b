package api

import (
	"strings"

	"github.com/alchemist-music/alchemist-api/pkg/logincode"
)

// RequestCodeRequest is the body of POST /auth/request-code
type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (req *RequestCodeRequest) Normalize() {
	req.Email = logincode.NormalizeEmail(req.Email)
}

// RequestCodeResponse confirms a code was issued. DebugCode is null unless
// debug codes are enabled.
type RequestCodeResponse struct {
	Detail    string  `json:"detail"`
	DebugCode *string `json:"debug_code"`
}

// VerifyCodeRequest is the body of POST /auth/verify-code
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

func (req *VerifyCodeRequest) Normalize() {
	req.Email = logincode.NormalizeEmail(req.Email)
	req.Code = strings.TrimSpace(req.Code)
}

// TokenResponse carries the access token; the refresh token goes in a cookie
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse is the body of GET /auth/me
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
