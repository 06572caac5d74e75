package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// Messages are surfaced to the client as-is.
var (
	ErrDuplicateAccount   = errors.New("Username or email already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrMissingFields      = errors.New("Username and password are required")
)

// PlayerAccount is a persisted player identity, distinct from the
// session-scoped Player that lives only as long as a connection.
type PlayerAccount struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
}

// Signup creates an account with a bcrypt-hashed password. Email is optional
// but unique when present.
func (p *Postgres) Signup(ctx context.Context, username, password, displayName, email string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrMissingFields
	}
	if displayName == "" {
		displayName = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var emailArg any
	if email != "" {
		emailArg = email
	}

	var id int64
	err = p.pool.QueryRow(ctx, `
		INSERT INTO players (username, password_hash, display_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, string(hash), displayName, emailArg).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateAccount
		}
		return 0, fmt.Errorf("signup: %w", err)
	}

	p.log.Info("store.signup", "username", username, "id", id)
	return id, nil
}

// Login verifies credentials and bumps last_login. Unknown usernames and bad
// passwords are indistinguishable to the caller.
func (p *Postgres) Login(ctx context.Context, username, password string) (PlayerAccount, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, display_name, COALESCE(email, ''),
		       games_played, games_won
		FROM players
		WHERE username = $1
	`, username)

	var a PlayerAccount
	var hash string
	if err := row.Scan(&a.ID, &a.Username, &hash, &a.DisplayName, &a.Email,
		&a.GamesPlayed, &a.GamesWon); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PlayerAccount{}, ErrInvalidCredentials
		}
		return PlayerAccount{}, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return PlayerAccount{}, ErrInvalidCredentials
	}

	if _, err := p.pool.Exec(ctx, `
		UPDATE players SET last_login = NOW() WHERE id = $1
	`, a.ID); err != nil {
		p.log.Warn("store.login.touch", "id", a.ID, "err", err)
	}

	return a, nil
}

// GetPlayer fetches an account by id.
func (p *Postgres) GetPlayer(ctx context.Context, id int64) (PlayerAccount, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, username, display_name, COALESCE(email, ''),
		       games_played, games_won
		FROM players
		WHERE id = $1
	`, id)

	var a PlayerAccount
	if err := row.Scan(&a.ID, &a.Username, &a.DisplayName, &a.Email,
		&a.GamesPlayed, &a.GamesWon); err != nil {
		return PlayerAccount{}, fmt.Errorf("get player: %w", err)
	}
	return a, nil
}

// UpdateStats increments games_played, and games_won when won is true.
func (p *Postgres) UpdateStats(ctx context.Context, id int64, won bool) error {
	wonInc := 0
	if won {
		wonInc = 1
	}
	_, err := p.pool.Exec(ctx, `
		UPDATE players
		SET games_played = games_played + 1,
		    games_won = games_won + $2
		WHERE id = $1
	`, id, wonInc)
	if err != nil {
		return fmt.Errorf("update stats: %w", err)
	}
	return nil
}
