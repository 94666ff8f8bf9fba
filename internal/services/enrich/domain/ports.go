package domain

import "context"

// InferencePort is the opaque text-completion capability
// every call is bounded by the client's own timeout and retry budget;
// exhausted retries surface as an error, never a panic
type InferencePort interface {
	// Infer runs the three field inferences concurrently and returns
	// whatever was computed plus the first error if any sub-call failed
	Infer(ctx context.Context, code string) (Result, error)

	InferTitle(ctx context.Context, code string) (string, error)
	InferLanguage(ctx context.Context, code string) (string, error)
	InferTags(ctx context.Context, code string) ([]string, error)
}

// SchedulerPort accepts enrichment jobs without blocking the caller
type SchedulerPort interface {
	// Submit hands a job to the worker pool; false means it was dropped
	// (queue full or scheduler shut down), which is acceptable best-effort
	Submit(job Job) bool
}

// ApplierPort is the persistence surface the pipeline writes back through
type ApplierPort interface {
	// ApplyEnrichment updates title, language and tags together in one
	// statement keyed by snippet id; ownership was verified at creation
	ApplyEnrichment(ctx context.Context, snippetID, title, language string, tags []string) error
}
