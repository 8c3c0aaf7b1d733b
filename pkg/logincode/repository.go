package logincode

import (
	"context"
	"time"
)

// Repository persists users and login codes.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	// CreateUser returns ErrEmailTaken when the email already exists.
	CreateUser(ctx context.Context, id, email string) (*User, error)

	CreateLoginCode(ctx context.Context, userID, email, codeHash string, expiresAt time.Time) (*LoginCode, error)
	// ConsumeLoginCode marks the newest unused code with expires_at > now
	// matching email and codeHash as used and returns it. It returns
	// ErrInvalidCode when nothing matches. At most one caller can consume a row.
	ConsumeLoginCode(ctx context.Context, email, codeHash string, now time.Time) (*LoginCode, error)
}
