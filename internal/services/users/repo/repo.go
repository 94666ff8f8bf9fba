// Package repo provides the Postgres repository for user accounts
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"codenest/internal/modkit/repokit"
	perr "codenest/internal/platform/errors"
	"codenest/internal/platform/store"
	"codenest/internal/services/users/domain"
)

type binder struct{}

// NewPG constructs a repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the users repository
type Storage interface {
	Insert(ctx context.Context, id, email, passwordHash string) error
	Credentials(ctx context.Context, email string) (id, passwordHash string, err error)
	PasswordHash(ctx context.Context, id string) (string, error)
	Get(ctx context.Context, id string) (domain.User, error)
	Delete(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id, hash string) error
	SetEmail(ctx context.Context, id, email string) error
	SetDarkMode(ctx context.Context, id string, on bool) error
	SetAIEnabled(ctx context.Context, id string, on bool) error
}

type pg struct{ q repokit.Queryer }

func (s *pg) Insert(ctx context.Context, id, email, passwordHash string) error {
	return store.ExecOne(ctx, s.q, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, id, email, passwordHash)
}

func (s *pg) Credentials(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.q.QueryRow(ctx, `
		SELECT id::text, password_hash FROM users WHERE email = $1
	`, email).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", perr.NotFoundf("user not found")
	}
	return id, hash, err
}

func (s *pg) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.q.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id = $1
	`, id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", perr.NotFoundf("user not found")
	}
	return hash, err
}

func (s *pg) Get(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := s.q.QueryRow(ctx, `
		SELECT id::text, email, dark_mode, ai_enabled, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.DarkMode, &u.AIEnabled, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, perr.NotFoundf("user not found")
	}
	return u, err
}

func (s *pg) Delete(ctx context.Context, id string) error {
	return s.update(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (s *pg) SetPasswordHash(ctx context.Context, id, hash string) error {
	return s.update(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (s *pg) SetEmail(ctx context.Context, id, email string) error {
	return s.update(ctx, `UPDATE users SET email = $2 WHERE id = $1`, id, email)
}

func (s *pg) SetDarkMode(ctx context.Context, id string, on bool) error {
	return s.update(ctx, `UPDATE users SET dark_mode = $2 WHERE id = $1`, id, on)
}

func (s *pg) SetAIEnabled(ctx context.Context, id string, on bool) error {
	return s.update(ctx, `UPDATE users SET ai_enabled = $2 WHERE id = $1`, id, on)
}

// update runs a single-row write; zero affected rows means the user is gone
func (s *pg) update(ctx context.Context, sql string, args ...any) error {
	err := store.ExecOne(ctx, s.q, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("user not found")
	}
	return err
}
