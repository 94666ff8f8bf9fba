package domain

import "context"

// SnippetPort is the service surface for snippet CRUD
// owner-scoped lookups return not-found for rows owned by someone else
type SnippetPort interface {
	Create(ctx context.Context, userID string, in CreateInput) (Snippet, error)
	List(ctx context.Context, userID string) ([]Snippet, error)
	GetOwned(ctx context.Context, userID, id string) (Snippet, error)
	GetPublic(ctx context.Context, id string) (PublicView, error)
	Edit(ctx context.Context, userID, id string, in EditInput) (Snippet, error)
	ToggleFavourite(ctx context.Context, userID, id string) (bool, error)
	Delete(ctx context.Context, userID, id string) error
}
