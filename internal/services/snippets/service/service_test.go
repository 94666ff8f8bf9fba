package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"codenest/internal/modkit/repokit"
	perrs "codenest/internal/platform/errors"
	"codenest/internal/platform/store"
	enrichdomain "codenest/internal/services/enrich/domain"
	"codenest/internal/services/snippets/domain"
	"codenest/internal/services/snippets/repo"
	usersdomain "codenest/internal/services/users/domain"
)

// fakeDB satisfies repokit.TxRunner; the in-memory storage ignores the queryer
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeDB) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (db fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(db)
}

// memStorage is an in-memory repo.Storage
type memStorage struct {
	rows map[string]domain.Snippet
}

func newMemStorage() *memStorage { return &memStorage{rows: map[string]domain.Snippet{}} }

func (m *memStorage) Insert(_ context.Context, s domain.Snippet) error {
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.rows[s.ID] = s
	return nil
}

func (m *memStorage) ListByUser(_ context.Context, userID string) ([]domain.Snippet, error) {
	out := []domain.Snippet{}
	for _, s := range m.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStorage) GetOwned(_ context.Context, userID, id string) (domain.Snippet, error) {
	s, ok := m.rows[id]
	if !ok || s.UserID != userID {
		return domain.Snippet{}, perrs.NotFoundf("snippet not found")
	}
	return s, nil
}

func (m *memStorage) GetPublic(_ context.Context, id string) (domain.Snippet, error) {
	s, ok := m.rows[id]
	if !ok || !s.IsPublic {
		return domain.Snippet{}, perrs.NotFoundf("snippet not found")
	}
	return s, nil
}

func (m *memStorage) Update(_ context.Context, s domain.Snippet) error {
	cur, ok := m.rows[s.ID]
	if !ok || cur.UserID != s.UserID {
		return perrs.NotFoundf("snippet not found")
	}
	s.CreatedAt = cur.CreatedAt
	s.UpdatedAt = time.Now()
	m.rows[s.ID] = s
	return nil
}

func (m *memStorage) ToggleFavourite(_ context.Context, userID, id string) (bool, error) {
	s, ok := m.rows[id]
	if !ok || s.UserID != userID {
		return false, perrs.NotFoundf("snippet not found")
	}
	s.Favourite = !s.Favourite
	m.rows[id] = s
	return s.Favourite, nil
}

func (m *memStorage) Delete(_ context.Context, userID, id string) error {
	s, ok := m.rows[id]
	if !ok || s.UserID != userID {
		return perrs.NotFoundf("snippet not found")
	}
	delete(m.rows, id)
	return nil
}

func (m *memStorage) ApplyEnrichment(_ context.Context, id, title, language string, tags []string) error {
	s, ok := m.rows[id]
	if !ok {
		return perrs.NotFoundf("snippet not found")
	}
	s.Title, s.Language, s.Tags = title, language, tags
	s.UpdatedAt = time.Now()
	m.rows[id] = s
	return nil
}

type memBinder struct{ st *memStorage }

func (b memBinder) Bind(repokit.Queryer) repo.Storage { return b.st }

// stubScheduler records submitted jobs
type stubScheduler struct{ jobs []enrichdomain.Job }

func (s *stubScheduler) Submit(job enrichdomain.Job) bool {
	s.jobs = append(s.jobs, job)
	return true
}

// stubSettings answers Get with a fixed ai_enabled flag
type stubSettings struct {
	aiEnabled bool
	err       error
}

func (s *stubSettings) Get(_ context.Context, userID string) (usersdomain.User, error) {
	if s.err != nil {
		return usersdomain.User{}, s.err
	}
	return usersdomain.User{ID: userID, AIEnabled: s.aiEnabled}, nil
}

func (s *stubSettings) SetDarkMode(context.Context, string, bool) error  { return nil }
func (s *stubSettings) SetAIEnabled(context.Context, string, bool) error { return nil }

func newTestService(sched enrichdomain.SchedulerPort, settings usersdomain.SettingsPort) (*Service, *memStorage) {
	st := newMemStorage()
	return New(fakeDB{}, memBinder{st: st}, sched, settings), st
}

func TestCreate_AppliesDefaults(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})

	sn, err := svc.Create(context.Background(), "u1", domain.CreateInput{Content: "func main() {}"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sn.Title != domain.DefaultTitle {
		t.Fatalf("title = %q, want default", sn.Title)
	}
	if sn.Tags == nil || len(sn.Tags) != 0 {
		t.Fatalf("tags = %#v, want empty non-nil slice", sn.Tags)
	}
	if sn.ID == "" || sn.UserID != "u1" {
		t.Fatalf("unexpected snippet %+v", sn)
	}
}

func TestCreate_SubmitsEnrichmentForDefaultFields(t *testing.T) {
	t.Parallel()

	sched := &stubScheduler{}
	svc, _ := newTestService(sched, &stubSettings{aiEnabled: true})

	sn, err := svc.Create(context.Background(), "u1", domain.CreateInput{Content: "code"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sched.jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(sched.jobs))
	}
	job := sched.jobs[0]
	if job.SnippetID != sn.ID || job.Content != "code" || job.Title != domain.DefaultTitle {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestCreate_SkipsEnrichmentWhenFullySpecified(t *testing.T) {
	t.Parallel()

	sched := &stubScheduler{}
	svc, _ := newTestService(sched, &stubSettings{aiEnabled: true})

	_, err := svc.Create(context.Background(), "u1", domain.CreateInput{
		Title:    "Named",
		Content:  "code",
		Language: "Go",
		Tags:     []string{"one"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sched.jobs) != 0 {
		t.Fatalf("jobs = %d, want 0", len(sched.jobs))
	}
}

func TestCreate_SkipsEnrichmentWhenAIDisabled(t *testing.T) {
	t.Parallel()

	sched := &stubScheduler{}
	svc, _ := newTestService(sched, &stubSettings{aiEnabled: false})

	if _, err := svc.Create(context.Background(), "u1", domain.CreateInput{Content: "code"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sched.jobs) != 0 {
		t.Fatalf("jobs = %d, want 0", len(sched.jobs))
	}
}

func TestCreate_SettingsFailureDropsJobNotCreate(t *testing.T) {
	t.Parallel()

	sched := &stubScheduler{}
	svc, st := newTestService(sched, &stubSettings{err: errors.New("settings down")})

	sn, err := svc.Create(context.Background(), "u1", domain.CreateInput{Content: "code"})
	if err != nil {
		t.Fatalf("Create should survive a settings failure: %v", err)
	}
	if _, ok := st.rows[sn.ID]; !ok {
		t.Fatal("snippet row missing")
	}
	if len(sched.jobs) != 0 {
		t.Fatalf("jobs = %d, want 0", len(sched.jobs))
	}
}

func TestCreate_NilSchedulerIsTolerated(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})
	if _, err := svc.Create(context.Background(), "u1", domain.CreateInput{Content: "code"}); err != nil {
		t.Fatalf("Create with nil scheduler: %v", err)
	}
}

func TestEdit_MergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})
	ctx := context.Background()

	sn, err := svc.Create(ctx, "u1", domain.CreateInput{
		Title:    "Original",
		Content:  "v1",
		Language: "Go",
		Tags:     []string{"a"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newContent := "v2"
	pub := true
	got, err := svc.Edit(ctx, "u1", sn.ID, domain.EditInput{Content: &newContent, IsPublic: &pub})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got.Content != "v2" || !got.IsPublic {
		t.Fatalf("edited fields not applied: %+v", got)
	}
	if got.Title != "Original" || got.Language != "Go" || len(got.Tags) != 1 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestEdit_OtherUsersSnippetIsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})
	ctx := context.Background()

	sn, _ := svc.Create(ctx, "u1", domain.CreateInput{Content: "mine"})

	title := "stolen"
	_, err := svc.Edit(ctx, "u2", sn.ID, domain.EditInput{Title: &title})
	if !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("expected not found for foreign snippet, got %#v", err)
	}
}

func TestGetPublic_ReturnsRedactedView(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})
	ctx := context.Background()

	sn, _ := svc.Create(ctx, "u1", domain.CreateInput{Content: "shared", IsPublic: true})
	priv, _ := svc.Create(ctx, "u1", domain.CreateInput{Content: "hidden"})

	view, err := svc.GetPublic(ctx, sn.ID)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if view.ID != sn.ID || view.Content != "shared" {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := svc.GetPublic(ctx, priv.ID); !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("private snippet must read as not found, got %#v", err)
	}
}

func TestToggleFavourite_FlipsAndReturnsState(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, &stubSettings{aiEnabled: true})
	ctx := context.Background()

	sn, _ := svc.Create(ctx, "u1", domain.CreateInput{Content: "code"})

	on, err := svc.ToggleFavourite(ctx, "u1", sn.ID)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}
	off, err := svc.ToggleFavourite(ctx, "u1", sn.ID)
	if err != nil || off {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", off, err)
	}
}

func TestDelete_ScopedToOwner(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(nil, &stubSettings{aiEnabled: true})
	ctx := context.Background()

	sn, _ := svc.Create(ctx, "u1", domain.CreateInput{Content: "code"})

	if err := svc.Delete(ctx, "u2", sn.ID); !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("foreign delete should be not found, got %#v", err)
	}
	if err := svc.Delete(ctx, "u1", sn.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(st.rows) != 0 {
		t.Fatalf("rows left after delete: %d", len(st.rows))
	}
}
