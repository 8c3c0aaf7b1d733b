// Package logincode implements passwordless sign-in with emailed one-time
// codes.
//
// A code request normalizes the email, creates the user on first contact,
// stores the SHA-256 digest of a fresh 6-digit code and delivers the
// plaintext through the notification manager. Verification consumes the
// newest matching unused code whose expiry is strictly after now, in a single
// conditional write, and returns the owning user.
package logincode
