package logincode

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// CodeLength is the number of digits in a login code.
const CodeLength = 6

// DefaultCodeTTL is how long an issued code stays acceptable.
const DefaultCodeTTL = 10 * time.Minute

// User is an identity created on first code request.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginCode is one issuance of a one-time code. Only the digest is stored.
type LoginCode struct {
	ID        int64
	UserID    *string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Acceptable reports whether the code may still be consumed at now.
func (c LoginCode) Acceptable(now time.Time) bool {
	return !c.Used && c.ExpiresAt.After(now)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashCode returns the hex SHA-256 digest of a trimmed code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

var codeUpperBound = big.NewInt(1_000_000)

// GenerateCode returns a random zero-padded 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeUpperBound)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
