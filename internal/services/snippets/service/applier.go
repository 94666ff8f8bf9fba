package service

import (
	"context"

	"codenest/internal/modkit/repokit"
	"codenest/internal/services/snippets/repo"
)

// Applier writes enrichment results to storage
// it is a separate small type so the enrichment pipeline can be wired
// before the full snippets service exists
type Applier struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// NewApplier constructs an Applier
func NewApplier(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Applier {
	return &Applier{DB: db, Binder: b}
}

// ApplyEnrichment stores generated fields in one update keyed by id
func (a *Applier) ApplyEnrichment(ctx context.Context, id, title, language string, tags []string) error {
	return a.Binder.Bind(a.DB).ApplyEnrichment(ctx, id, title, language, tags)
}
