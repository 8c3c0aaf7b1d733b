package logincode

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "alchemist_db.sql")),
		postgres.WithDatabase("alchemist_db"),
		postgres.WithUsername("alchemist"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL test in short mode")
	}

	pool := setupTestDatabase(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "user-1", "pg@x.com")
	require.NoError(t, err)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, "user-2", "pg@x.com")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("GetUser", func(t *testing.T) {
		byEmail, err := repo.GetUserByEmail(ctx, "pg@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = repo.GetUserByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("ConsumeOnce", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("111111"), now.Add(10*time.Minute))
		require.NoError(t, err)

		lc, err := repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("111111"), now)
		require.NoError(t, err)
		assert.True(t, lc.Used)
		require.NotNil(t, lc.UserID)
		assert.Equal(t, user.ID, *lc.UserID)

		_, err = repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("111111"), now)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("ExpiryIsStrict", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(time.Minute).Truncate(time.Microsecond)
		_, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("222222"), expiresAt)
		require.NoError(t, err)

		_, err = repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("222222"), expiresAt)
		assert.ErrorIs(t, err, ErrInvalidCode)

		_, err = repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("222222"), expiresAt.Add(-time.Microsecond))
		assert.NoError(t, err)
	})

	t.Run("WrongEmail", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("333333"), now.Add(time.Minute))
		require.NoError(t, err)

		_, err = repo.ConsumeLoginCode(ctx, "other@x.com", HashCode("333333"), now)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("NewestMatchWins", func(t *testing.T) {
		now := time.Now().UTC()
		older, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("444444"), now.Add(time.Minute))
		require.NoError(t, err)
		newer, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("444444"), now.Add(time.Minute))
		require.NoError(t, err)

		lc, err := repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("444444"), now)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, lc.ID)

		lc, err = repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("444444"), now)
		require.NoError(t, err)
		assert.Equal(t, older.ID, lc.ID)
	})

	t.Run("ConcurrentConsume", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := repo.CreateLoginCode(ctx, user.ID, "pg@x.com", HashCode("555555"), now.Add(time.Minute))
		require.NoError(t, err)

		var wg sync.WaitGroup
		var wins atomic.Int32
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.ConsumeLoginCode(ctx, "pg@x.com", HashCode("555555"), now); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}
