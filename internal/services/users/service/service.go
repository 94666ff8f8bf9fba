// Package service implements account and settings workflows
package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"codenest/internal/modkit/repokit"
	perr "codenest/internal/platform/errors"
	"codenest/internal/services/users/domain"
	"codenest/internal/services/users/repo"
)

// Service implements domain.AccountPort and domain.SettingsPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Tokens domain.TokenPort
}

// New constructs the users service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], tokens domain.TokenPort) *Service {
	return &Service{DB: db, Binder: b, Tokens: tokens}
}

// Register creates an account; duplicate emails surface as a conflict
func (s *Service) Register(ctx context.Context, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, perr.Wrap(err, perr.ErrorCodeUnknown, "hash password")
	}

	id := uuid.NewString()
	var u domain.User
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.Insert(ctx, id, email, string(hash)); err != nil {
			return err
		}
		var err error
		u, err = st.Get(ctx, id)
		return err
	})
	if perr.IsDuplicateKey(err) {
		return domain.User{}, perr.Conflictf("email already registered")
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token
// the failure message never reveals whether the email exists
func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	id, hash, err := s.Binder.Bind(s.DB).Credentials(ctx, email)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Session{}, perr.Unauthorizedf("invalid login details")
	}
	if err != nil {
		return domain.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.Session{}, perr.Unauthorizedf("invalid login details")
	}

	token, err := s.Tokens.Issue(id)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token, UserID: id}, nil
}

// Delete removes the account; snippets go with it via FK cascade
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.Binder.Bind(s.DB).Delete(ctx, userID)
}

// ChangePassword verifies the current password before storing the new hash
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	st := s.Binder.Bind(s.DB)
	hash, err := st.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return perr.Unauthorizedf("current password is incorrect")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "hash password")
	}
	return st.SetPasswordHash(ctx, userID, string(newHash))
}

// ChangeEmail verifies the password before changing the address
func (s *Service) ChangeEmail(ctx context.Context, userID, password, email string) error {
	st := s.Binder.Bind(s.DB)
	hash, err := st.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return perr.Unauthorizedf("password is incorrect")
	}
	err = st.SetEmail(ctx, userID, email)
	if perr.IsDuplicateKey(err) {
		return perr.Conflictf("email already registered")
	}
	return err
}

// Get implements domain.SettingsPort
func (s *Service) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.Binder.Bind(s.DB).Get(ctx, userID)
}

// SetDarkMode implements domain.SettingsPort
func (s *Service) SetDarkMode(ctx context.Context, userID string, on bool) error {
	return s.Binder.Bind(s.DB).SetDarkMode(ctx, userID, on)
}

// SetAIEnabled implements domain.SettingsPort
func (s *Service) SetAIEnabled(ctx context.Context, userID string, on bool) error {
	return s.Binder.Bind(s.DB).SetAIEnabled(ctx, userID, on)
}
