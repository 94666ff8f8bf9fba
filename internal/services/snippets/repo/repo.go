// Package repo provides the Postgres repository for snippets
//
// Content is encrypted at rest: Insert and Update seal the plaintext with
// the platform crypto box and every read opens it before returning
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"codenest/internal/modkit/repokit"
	"codenest/internal/platform/crypto"
	perr "codenest/internal/platform/errors"
	"codenest/internal/platform/store"
	"codenest/internal/services/snippets/domain"
)

type binder struct{ box *crypto.Box }

// NewPG constructs a repo binder for Postgres
func NewPG(box *crypto.Box) repokit.Binder[Storage] { return binder{box: box} }

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) Storage { return &pg{q: q, box: b.box} }

// Storage defines the snippets repository
type Storage interface {
	Insert(ctx context.Context, s domain.Snippet) error
	ListByUser(ctx context.Context, userID string) ([]domain.Snippet, error)
	GetOwned(ctx context.Context, userID, id string) (domain.Snippet, error)
	GetPublic(ctx context.Context, id string) (domain.Snippet, error)
	Update(ctx context.Context, s domain.Snippet) error
	ToggleFavourite(ctx context.Context, userID, id string) (bool, error)
	Delete(ctx context.Context, userID, id string) error
	ApplyEnrichment(ctx context.Context, id, title, language string, tags []string) error
}

type pg struct {
	q   repokit.Queryer
	box *crypto.Box
}

const snippetCols = `id::text, user_id::text, title, content, language, tags, favourite, is_public, created_at, updated_at`

func (s *pg) Insert(ctx context.Context, sn domain.Snippet) error {
	sealed, err := s.box.Encrypt(sn.Content)
	if err != nil {
		return err
	}
	return store.ExecOne(ctx, s.q, `
		INSERT INTO snippets (id, user_id, title, content, language, tags, favourite, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, sn.ID, sn.UserID, sn.Title, sealed, sn.Language, sn.Tags, sn.Favourite, sn.IsPublic)
}

func (s *pg) ListByUser(ctx context.Context, userID string) ([]domain.Snippet, error) {
	out, err := store.Many(ctx, s.q, s.scan, `
		SELECT `+snippetCols+`
		FROM snippets WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Snippet{}
	}
	return out, nil
}

func (s *pg) GetOwned(ctx context.Context, userID, id string) (domain.Snippet, error) {
	return s.one(ctx, `
		SELECT `+snippetCols+`
		FROM snippets WHERE id = $1 AND user_id = $2
	`, id, userID)
}

func (s *pg) GetPublic(ctx context.Context, id string) (domain.Snippet, error) {
	return s.one(ctx, `
		SELECT `+snippetCols+`
		FROM snippets WHERE id = $1 AND is_public
	`, id)
}

func (s *pg) Update(ctx context.Context, sn domain.Snippet) error {
	sealed, err := s.box.Encrypt(sn.Content)
	if err != nil {
		return err
	}
	return s.execOwned(ctx, `
		UPDATE snippets
		SET title = $3, content = $4, language = $5, tags = $6, is_public = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, sn.ID, sn.UserID, sn.Title, sealed, sn.Language, sn.Tags, sn.IsPublic)
}

func (s *pg) ToggleFavourite(ctx context.Context, userID, id string) (bool, error) {
	fav, err := store.Scalar[bool](ctx, s.q, `
		UPDATE snippets
		SET favourite = NOT favourite, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING favourite
	`, id, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, perr.NotFoundf("snippet not found")
	}
	return fav, err
}

func (s *pg) Delete(ctx context.Context, userID, id string) error {
	return s.execOwned(ctx, `DELETE FROM snippets WHERE id = $1 AND user_id = $2`, id, userID)
}

// ApplyEnrichment writes generated fields by id only; the owner check
// happened when the job was accepted and the row may have been edited since
func (s *pg) ApplyEnrichment(ctx context.Context, id, title, language string, tags []string) error {
	return s.execOwned(ctx, `
		UPDATE snippets
		SET title = $2, language = $3, tags = $4, updated_at = now()
		WHERE id = $1
	`, id, title, language, tags)
}

// execOwned runs a single-row write; zero affected rows means the id does
// not exist or belongs to someone else, and both read as not found
func (s *pg) execOwned(ctx context.Context, sql string, args ...any) error {
	err := store.ExecOne(ctx, s.q, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("snippet not found")
	}
	return err
}

func (s *pg) one(ctx context.Context, sql string, args ...any) (domain.Snippet, error) {
	sn, err := store.One(ctx, s.q, s.scan, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Snippet{}, perr.NotFoundf("snippet not found")
	}
	return sn, err
}

func (s *pg) scan(row store.Row) (domain.Snippet, error) {
	var sn domain.Snippet
	var sealed string
	err := row.Scan(
		&sn.ID, &sn.UserID, &sn.Title, &sealed, &sn.Language,
		&sn.Tags, &sn.Favourite, &sn.IsPublic, &sn.CreatedAt, &sn.UpdatedAt,
	)
	if err != nil {
		return domain.Snippet{}, err
	}
	sn.Content, err = s.box.Decrypt(sealed)
	if err != nil {
		return domain.Snippet{}, perr.Wrap(err, perr.ErrorCodeUnknown, "decrypt snippet content")
	}
	if sn.Tags == nil {
		sn.Tags = []string{}
	}
	return sn, nil
}
