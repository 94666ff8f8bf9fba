// Package module provides the users module
package module

import (
	"net/http"

	"codenest/internal/modkit"
	"codenest/internal/modkit/httpkit"
	"codenest/internal/services/users/domain"
	"codenest/internal/services/users/repo"
	"codenest/internal/services/users/service"
)

// Ports exposed by the users module
type Ports struct {
	Accounts domain.AccountPort
	Settings domain.SettingsPort
	Tokens   domain.TokenPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the users module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	tokens := service.NewTokens(service.TokenConfig{
		Secret: opts.JWTSecret,
		TTL:    opts.TokenTTL,
	})
	svc := service.New(deps.PG, repo.NewPG(), tokens)

	m := &Module{deps: deps}
	m.ports = Ports{Accounts: svc, Settings: svc, Tokens: tokens}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "users" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module; routes are mounted by the api service
// because public and protected groups carry different middleware
func (m *Module) MountRoutes(r httpkit.Router) {}
