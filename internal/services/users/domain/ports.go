package domain

import "context"

// AccountPort is the credential store surface consumed by transports
type AccountPort interface {
	Register(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Delete(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
	ChangeEmail(ctx context.Context, userID, password, email string) error
}

// SettingsPort reads and writes per-user preferences
type SettingsPort interface {
	Get(ctx context.Context, userID string) (User, error)
	SetDarkMode(ctx context.Context, userID string, on bool) error
	SetAIEnabled(ctx context.Context, userID string, on bool) error
}

// TokenPort issues and verifies bearer tokens
type TokenPort interface {
	Issue(userID string) (string, error)
	Verify(token string) (userID string, err error)
}
