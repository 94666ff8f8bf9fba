package ratelimit

import "time"

// Rule is the configured budget for one endpoint
type Rule struct {
	Limit  int
	Window time.Duration
}

// Policy binds a Tracker to a table of per-endpoint rules
// construct one instance per actor keying (user id, client IP) and inject it;
// there is no package-level limiter state
type Policy struct {
	tracker *Tracker
	rules   map[string]Rule
	def     Rule
}

// DefaultRule applies to endpoints absent from the table
var DefaultRule = Rule{Limit: 60, Window: time.Minute}

// NewPolicy constructs a Policy over t with the given rule table
func NewPolicy(t *Tracker, rules map[string]Rule) *Policy {
	return &Policy{tracker: t, rules: rules, def: DefaultRule}
}

// Rule returns the configured rule for endpoint, falling back to the default
func (p *Policy) Rule(endpoint string) Rule {
	if r, ok := p.rules[endpoint]; ok {
		return r
	}
	return p.def
}

// Allow runs the admission check for actor against the endpoint's rule
func (p *Policy) Allow(actor, endpoint string) Decision {
	r := p.Rule(endpoint)
	return p.tracker.Check(actor, endpoint, r.Limit, r.Window)
}

// Tracker exposes the underlying tracker so the sweeper can reach it
func (p *Policy) Tracker() *Tracker { return p.tracker }
