// Package module provides the snippets module
package module

import (
	"net/http"

	"codenest/internal/modkit"
	"codenest/internal/modkit/httpkit"
	"codenest/internal/platform/crypto"
	enrichdomain "codenest/internal/services/enrich/domain"
	"codenest/internal/services/snippets/domain"
	"codenest/internal/services/snippets/repo"
	"codenest/internal/services/snippets/service"
	usersdomain "codenest/internal/services/users/domain"
)

// Ports exposed by the snippets module
type Ports struct {
	Snippets domain.SnippetPort

	// Applier is handed to the enrichment pipeline so finished results
	// can be written back without the pipeline knowing about snippets
	Applier enrichdomain.ApplierPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	svc   *service.Service
	ports Ports
}

// New constructs the snippets module; the scheduler is bound afterwards
// because the enrichment pipeline needs this module's applier first
func New(deps modkit.Deps, settings usersdomain.SettingsPort) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	box, err := crypto.New(opts.CryptoKey)
	if err != nil {
		return nil, err
	}

	b := repo.NewPG(box)
	svc := service.New(deps.PG, b, nil, settings)

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{
		Snippets: svc,
		Applier:  service.NewApplier(deps.PG, b),
	}
	return m, nil
}

// BindScheduler wires the enrichment scheduler into the create flow
// call before routes are mounted; a nil port leaves enrichment off
func (m *Module) BindScheduler(s enrichdomain.SchedulerPort) { m.svc.Scheduler = s }

// Name implements modkit.Module
func (m *Module) Name() string { return "snippets" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module; routes are mounted by the api service
// because public and protected groups carry different middleware
func (m *Module) MountRoutes(r httpkit.Router) {}
