// Package service contains the enrichment worker pool and apply loop
package service

import (
	"context"
	"sync"
	"time"

	perr "codenest/internal/platform/errors"
	"codenest/internal/platform/logger"
	"codenest/internal/services/enrich/domain"
)

// Config sizes the pool; fixed at process start, shared across all jobs
type Config struct {
	Workers int           // inference workers; defaults to 2
	Queue   int           // job buffer; a full buffer drops new jobs
	Grace   time.Duration // shutdown grace for in-flight work
}

// applyMsg carries the final column values for one snippet
// current values stand in for fields that were not (or could not be) inferred
type applyMsg struct {
	snippetID string
	title     string
	language  string
	tags      []string
}

// Scheduler runs enrichment off the request path: workers block on the
// external service, then hand results to a single applier goroutine that
// owns all database writes for the pipeline
type Scheduler struct {
	infer domain.InferencePort
	store domain.ApplierPort
	cfg   Config
	log   logger.Logger

	jobs    chan domain.Job
	results chan applyMsg

	mu     sync.Mutex
	closed bool

	workers sync.WaitGroup
	applied chan struct{}
}

// New constructs a Scheduler; call Start before submitting
func New(infer domain.InferencePort, store domain.ApplierPort, cfg Config) *Scheduler {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.Queue <= 0 {
		cfg.Queue = 64
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 10 * time.Second
	}
	return &Scheduler{
		infer:   infer,
		store:   store,
		cfg:     cfg,
		log:     *logger.Named("enrich"),
		jobs:    make(chan domain.Job, cfg.Queue),
		results: make(chan applyMsg),
		applied: make(chan struct{}),
	}
}

// Start spawns the worker pool and the applier loop
func (s *Scheduler) Start() {
	for i := 0; i < s.cfg.Workers; i++ {
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			for job := range s.jobs {
				s.process(job)
			}
		}()
	}
	go s.runApplier()
}

// Submit implements domain.SchedulerPort; never blocks the caller
// a full queue or a closed scheduler drops the job with a warn log
func (s *Scheduler) Submit(job domain.Job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.jobs <- job:
		return true
	default:
		s.log.Warn().Str("snippet_id", job.SnippetID).Msg("enrichment queue full, job dropped")
		return false
	}
}

// Close stops intake and waits for in-flight jobs up to the grace period
// work still running past the grace is abandoned rather than blocking shutdown
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(s.results)
		<-s.applied
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.Grace):
		return perr.Unavailablef("enrichment shutdown grace elapsed")
	}
}

// process computes the enrichment for one job and queues the write-back
// every failure path ends in a log, never a panic or a propagated error
func (s *Scheduler) process(job domain.Job) {
	if !job.NeedsAny() {
		return
	}

	res, err := s.inferFor(context.Background(), job)

	title, language, tags := job.Title, job.Language, job.Tags
	changed := false
	if job.NeedsTitle() && res.Title != "" {
		title, changed = res.Title, true
	}
	if job.NeedsLanguage() && res.Language != "" {
		language, changed = res.Language, true
	}
	if job.NeedsTags() && len(res.Tags) > 0 {
		tags, changed = res.Tags, true
	}

	if !changed {
		s.log.Warn().Err(err).Str("snippet_id", job.SnippetID).Msg("enrichment produced nothing, job dropped")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("snippet_id", job.SnippetID).Msg("partial enrichment, applying computed fields")
	}

	s.results <- applyMsg{snippetID: job.SnippetID, title: title, language: language, tags: tags}
}

// inferFor runs the combined inference when every field is still default,
// otherwise only the individual fields that need it
func (s *Scheduler) inferFor(ctx context.Context, job domain.Job) (domain.Result, error) {
	if job.NeedsAll() {
		return s.infer.Infer(ctx, job.Content)
	}

	var res domain.Result
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if job.NeedsTitle() {
		t, err := s.infer.InferTitle(ctx, job.Content)
		res.Title = t
		keep(err)
	}
	if job.NeedsLanguage() {
		l, err := s.infer.InferLanguage(ctx, job.Content)
		res.Language = l
		keep(err)
	}
	if job.NeedsTags() {
		tags, err := s.infer.InferTags(ctx, job.Content)
		res.Tags = tags
		keep(err)
	}
	return res, firstErr
}

// runApplier is the single writer for the enrichment pipeline; results are
// marshalled here instead of being written from worker goroutines
func (s *Scheduler) runApplier() {
	for m := range s.results {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.store.ApplyEnrichment(ctx, m.snippetID, m.title, m.language, m.tags); err != nil {
			s.log.Error().Err(err).Str("snippet_id", m.snippetID).Msg("enrichment apply failed, dropped")
		} else {
			s.log.Debug().Str("snippet_id", m.snippetID).Msg("enrichment applied")
		}
		cancel()
	}
	close(s.applied)
}
