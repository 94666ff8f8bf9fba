// Package service implements snippet workflows
package service

import (
	"context"

	"github.com/google/uuid"

	"codenest/internal/modkit/repokit"
	"codenest/internal/platform/logger"
	enrichdomain "codenest/internal/services/enrich/domain"
	"codenest/internal/services/snippets/domain"
	"codenest/internal/services/snippets/repo"
	usersdomain "codenest/internal/services/users/domain"
)

// Service implements domain.SnippetPort
type Service struct {
	DB        repokit.TxRunner
	Binder    repokit.Binder[repo.Storage]
	Scheduler enrichdomain.SchedulerPort // nil when enrichment is disabled
	Settings  usersdomain.SettingsPort
}

// New constructs the snippets service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], sched enrichdomain.SchedulerPort, settings usersdomain.SettingsPort) *Service {
	return &Service{DB: db, Binder: b, Scheduler: sched, Settings: settings}
}

// Create stores a snippet and, once the row is committed, offers an
// enrichment job for any field the caller left at its default
func (s *Service) Create(ctx context.Context, userID string, in domain.CreateInput) (domain.Snippet, error) {
	title := in.Title
	if title == "" {
		title = domain.DefaultTitle
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	id := uuid.NewString()
	var sn domain.Snippet
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.Insert(ctx, domain.Snippet{
			ID:       id,
			UserID:   userID,
			Title:    title,
			Content:  in.Content,
			Language: in.Language,
			Tags:     tags,
			IsPublic: in.IsPublic,
		}); err != nil {
			return err
		}
		var err error
		sn, err = st.GetOwned(ctx, userID, id)
		return err
	})
	if err != nil {
		return domain.Snippet{}, err
	}

	s.maybeEnrich(ctx, sn)
	return sn, nil
}

// maybeEnrich submits a job after commit when the owner has AI enabled
// and at least one field is still at its creation default; a full queue
// or a settings lookup failure drops the job, never the create
func (s *Service) maybeEnrich(ctx context.Context, sn domain.Snippet) {
	if s.Scheduler == nil {
		return
	}
	job := enrichdomain.Job{
		SnippetID: sn.ID,
		Content:   sn.Content,
		Title:     sn.Title,
		Language:  sn.Language,
		Tags:      sn.Tags,
	}
	if !job.NeedsAny() {
		return
	}
	u, err := s.Settings.Get(ctx, sn.UserID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("snippet_id", sn.ID).Msg("enrichment settings lookup failed")
		return
	}
	if !u.AIEnabled {
		return
	}
	s.Scheduler.Submit(job)
}

// List implements domain.SnippetPort
func (s *Service) List(ctx context.Context, userID string) ([]domain.Snippet, error) {
	return s.Binder.Bind(s.DB).ListByUser(ctx, userID)
}

// GetOwned implements domain.SnippetPort
func (s *Service) GetOwned(ctx context.Context, userID, id string) (domain.Snippet, error) {
	return s.Binder.Bind(s.DB).GetOwned(ctx, userID, id)
}

// GetPublic returns a snippet that its owner marked public
func (s *Service) GetPublic(ctx context.Context, id string) (domain.PublicView, error) {
	sn, err := s.Binder.Bind(s.DB).GetPublic(ctx, id)
	if err != nil {
		return domain.PublicView{}, err
	}
	return sn.Public(), nil
}

// Edit applies the non-nil fields of in on top of the stored row
func (s *Service) Edit(ctx context.Context, userID, id string, in domain.EditInput) (domain.Snippet, error) {
	var out domain.Snippet
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		sn, err := st.GetOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		if in.Title != nil {
			sn.Title = *in.Title
		}
		if in.Content != nil {
			sn.Content = *in.Content
		}
		if in.Language != nil {
			sn.Language = *in.Language
		}
		if in.Tags != nil {
			sn.Tags = *in.Tags
		}
		if in.IsPublic != nil {
			sn.IsPublic = *in.IsPublic
		}
		if err := st.Update(ctx, sn); err != nil {
			return err
		}
		out, err = st.GetOwned(ctx, userID, id)
		return err
	})
	if err != nil {
		return domain.Snippet{}, err
	}
	return out, nil
}

// ToggleFavourite implements domain.SnippetPort
func (s *Service) ToggleFavourite(ctx context.Context, userID, id string) (bool, error) {
	return s.Binder.Bind(s.DB).ToggleFavourite(ctx, userID, id)
}

// Delete implements domain.SnippetPort
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Binder.Bind(s.DB).Delete(ctx, userID, id)
}
