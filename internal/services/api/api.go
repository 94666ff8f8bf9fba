// Package api assembles the HTTP surface: modules, auth, and rate limiting
package api

import (
	"time"

	"codenest/internal/platform/config"
	"codenest/internal/platform/logger"
	phttp "codenest/internal/platform/net/http"
	"codenest/internal/platform/store"

	"codenest/internal/core/ratelimit"
	"codenest/internal/modkit"
	"codenest/internal/modkit/httpkit"
	"codenest/internal/modkit/module"
	"codenest/internal/modkit/swaggerkit"

	metamod "codenest/internal/services/api/meta/module"
	enrichmod "codenest/internal/services/enrich/module"
	snippetshttp "codenest/internal/services/snippets/http"
	snippetsmod "codenest/internal/services/snippets/module"
	usershttp "codenest/internal/services/users/http"
	usersmod "codenest/internal/services/users/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// App holds the long-lived pieces main drives outside the router:
// the enrichment pipeline lifecycle and the rate limit sweeper
type App struct {
	Enrich  *enrichmod.Module
	Sweeper *ratelimit.Sweeper
}

// userRules budgets authenticated endpoints per user id per minute
var userRules = map[string]ratelimit.Rule{
	"get_snippets":     {Limit: 80, Window: time.Minute},
	"get_user_snippet": {Limit: 50, Window: time.Minute},
	"create_snippet":   {Limit: 20, Window: time.Minute},
	"edit_snippet":     {Limit: 30, Window: time.Minute},
	"toggle_favorite":  {Limit: 40, Window: time.Minute},
	"delete_snippet":   {Limit: 15, Window: time.Minute},

	"delete_user":      {Limit: 5, Window: time.Minute},
	"change_password":  {Limit: 10, Window: time.Minute},
	"change_email":     {Limit: 10, Window: time.Minute},
	"dark_mode":        {Limit: 20, Window: time.Minute},
	"change_dark_mode": {Limit: 30, Window: time.Minute},
	"get_ai_use":       {Limit: 30, Window: time.Minute},
	"change_ai_use":    {Limit: 30, Window: time.Minute},
}

// ipRules budgets unauthenticated endpoints per client address per minute
var ipRules = map[string]ratelimit.Rule{
	"login":              {Limit: 10, Window: time.Minute},
	"create_user":        {Limit: 5, Window: time.Minute},
	"get_public_snippet": {Limit: 30, Window: time.Minute},
}

// Mount mounts the API service onto the given router and returns the
// background pieces the caller owns
func Mount(r phttp.Router, opt Options) (*App, error) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	users := usersmod.New(deps)
	userPorts := module.MustPortsOf[usersmod.Ports](users)

	snippets, err := snippetsmod.New(deps, userPorts.Settings)
	if err != nil {
		return nil, err
	}
	snippetPorts := module.MustPortsOf[snippetsmod.Ports](snippets)

	// the pipeline writes back through the snippets applier, then its
	// scheduler is bound into the create flow
	enrich := enrichmod.New(deps, snippetPorts.Applier)
	snippets.BindScheduler(module.MustPortsOf[enrichmod.Ports](enrich).Scheduler)

	mods := []module.Module{metamod.New(deps), users, snippets, enrich}

	rc := opt.Config.Prefix("CORE_RATELIMIT_")
	userTracker := ratelimit.NewTracker()
	ipTracker := ratelimit.NewTracker()
	lim := &httpkit.Limiter{
		Users: ratelimit.NewPolicy(userTracker, userRules),
		IPs:   ratelimit.NewPolicy(ipTracker, ipRules),
	}
	sweeper := ratelimit.NewSweeper(ratelimit.SweeperConfig{
		Every:     rc.MayDuration("SWEEP_EVERY", 5*time.Minute),
		Retention: rc.MayDuration("RETENTION", time.Hour),
	}, userTracker, ipTracker)

	authPort := httpkit.NewPortFunc(userPorts.Tokens.Verify)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}

		httpkit.Protected(api, authPort, func(prot httpkit.Router) {
			usershttp.Register(api, prot, lim, userPorts.Accounts, userPorts.Settings)
			snippetshttp.Register(api, prot, lim, snippetPorts.Snippets)
		})
	})

	return &App{Enrich: enrich, Sweeper: sweeper}, nil
}
