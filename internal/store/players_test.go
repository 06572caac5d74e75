package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"cardroom/internal/config"
)

// startPostgres spins up a throwaway database and returns a migrated store.
func startPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cardroom_test"),
		tcpostgres.WithUsername("cardroom"),
		tcpostgres.WithPassword("cardroom"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pg, err := NewPostgres(ctx, config.Config{PGURL: dsn, PGMaxConn: 4}, logger)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, pg.RunMigrations(ctx))
	return pg
}

func TestPlayerAccounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}
	pg := startPostgres(t)
	ctx := context.Background()

	t.Run("signup and login", func(t *testing.T) {
		id, err := pg.Signup(ctx, "alice", "s3cret", "Alice", "alice@example.com")
		require.NoError(t, err)
		assert.Positive(t, id)

		account, err := pg.Login(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, id, account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, "Alice", account.DisplayName)
		assert.Equal(t, "alice@example.com", account.Email)
		assert.Zero(t, account.GamesPlayed)
	})

	t.Run("display name defaults to username", func(t *testing.T) {
		_, err := pg.Signup(ctx, "bob", "hunter2", "", "")
		require.NoError(t, err)

		account, err := pg.Login(ctx, "bob", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "bob", account.DisplayName)
		assert.Empty(t, account.Email)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := pg.Signup(ctx, "alice", "other", "", "")
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := pg.Signup(ctx, "alice2", "other", "", "alice@example.com")
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := pg.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		// Unknown usernames look exactly like bad passwords.
		_, err = pg.Login(ctx, "nobody", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := pg.Signup(ctx, "", "pw", "", "")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, err = pg.Signup(ctx, "carol", "", "", "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("stats", func(t *testing.T) {
		id, err := pg.Signup(ctx, "dana", "pw123", "Dana", "")
		require.NoError(t, err)

		require.NoError(t, pg.UpdateStats(ctx, id, true))
		require.NoError(t, pg.UpdateStats(ctx, id, false))

		account, err := pg.GetPlayer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, account.GamesPlayed)
		assert.Equal(t, 1, account.GamesWon)
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}
	pg := startPostgres(t)
	require.NoError(t, pg.RunMigrations(context.Background()))
}
