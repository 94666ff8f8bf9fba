// Package module wires the enrichment pipeline
package module

import (
	"context"
	"net/http"

	"codenest/internal/adapters/ai"
	"codenest/internal/modkit"
	"codenest/internal/modkit/httpkit"
	"codenest/internal/services/enrich/domain"
	"codenest/internal/services/enrich/service"
)

// Ports exposed by the enrichment module
// Scheduler is nil when the pipeline is disabled by config
type Ports struct {
	Scheduler domain.SchedulerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
	sched *service.Scheduler
}

// New constructs the enrichment module
// the applier is owned by the snippets service and injected here so the
// pipeline writes back through the same persistence surface
func New(deps modkit.Deps, applier domain.ApplierPort) *Module {
	opts := FromConfig(deps.Cfg)

	m := &Module{deps: deps}
	if !opts.Enabled {
		return m
	}

	client := ai.New(ai.Options{
		BaseURL: opts.BaseURL,
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		Timeout: opts.Timeout,
	})
	m.sched = service.New(client, applier, service.Config{
		Workers: opts.Workers,
		Queue:   opts.Queue,
		Grace:   opts.Grace,
	})
	m.ports = Ports{Scheduler: m.sched}
	return m
}

// Start launches the worker pool; no-op when disabled
func (m *Module) Start() {
	if m.sched != nil {
		m.sched.Start()
	}
}

// Close drains the pipeline within its grace period; no-op when disabled
func (m *Module) Close(ctx context.Context) error {
	if m.sched == nil {
		return nil
	}
	return m.sched.Close(ctx)
}

// Name implements modkit.Module
func (m *Module) Name() string { return "enrich" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module; the pipeline has no HTTP surface
func (m *Module) MountRoutes(r httpkit.Router) {}
