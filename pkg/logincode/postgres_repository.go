package logincode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresRepository stores users and login codes in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new repository backed by pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, created_at
		FROM users
		WHERE email = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, id, email string) (*User, error) {
	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		RETURNING id, email, created_at
	`

	var u User
	err := r.db.QueryRow(ctx, query, id, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) CreateLoginCode(ctx context.Context, userID, email, codeHash string, expiresAt time.Time) (*LoginCode, error) {
	query := `
		INSERT INTO login_codes (user_id, email, code_hash, expires_at)
		VALUES (NULLIF($1, ''), $2, $3, $4)
		RETURNING id, user_id, email, code_hash, expires_at, used, created_at
	`

	lc, err := scanLoginCode(r.db.QueryRow(ctx, query, userID, email, codeHash, expiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create login code: %w", err)
	}
	return lc, nil
}

// ConsumeLoginCode flips used in the same statement that picks the row, so
// two concurrent submissions of one code cannot both succeed.
func (r *PostgresRepository) ConsumeLoginCode(ctx context.Context, email, codeHash string, now time.Time) (*LoginCode, error) {
	query := `
		UPDATE login_codes
		SET used = TRUE
		WHERE id = (
			SELECT id FROM login_codes
			WHERE email = $1
			  AND code_hash = $2
			  AND used = FALSE
			  AND expires_at > $3
			ORDER BY created_at DESC, id DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		AND used = FALSE
		RETURNING id, user_id, email, code_hash, expires_at, used, created_at
	`

	lc, err := scanLoginCode(r.db.QueryRow(ctx, query, email, codeHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to consume login code: %w", err)
	}
	return lc, nil
}

func scanLoginCode(row pgx.Row) (*LoginCode, error) {
	var lc LoginCode
	err := row.Scan(
		&lc.ID,
		&lc.UserID,
		&lc.Email,
		&lc.CodeHash,
		&lc.ExpiresAt,
		&lc.Used,
		&lc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lc, nil
}
