package httpkit

import (
	"net"
	stdhttp "net/http"
	"strconv"
	"time"

	"codenest/internal/core/ratelimit"
	perrs "codenest/internal/platform/errors"
	pnet "codenest/internal/platform/net"
	phttp "codenest/internal/platform/net/http"
)

// limitWire is the 429 body shape
type limitWire struct {
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
	Limit      int    `json:"limit"`
	Window     int    `json:"window"`
}

// Limiter wraps handlers with admission checks against injected policies
// endpoint names are given at route registration, not derived from paths
type Limiter struct {
	Users *ratelimit.Policy // keyed by authenticated user id
	IPs   *ratelimit.Policy // keyed by client address
}

// User guards h with the user-keyed policy
// fails closed: no authenticated user id on the context means reject,
// never an unmetered pass-through
func (l *Limiter) User(endpoint string, h phttp.Handler) phttp.Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		uid := pnet.UserID(r.Context())
		if uid == "" {
			status, body := pnet.Error(perrs.Unauthorizedf("missing bearer token"), pnet.RequestID(r.Context()))
			phttp.JSON(w, status, body)
			return
		}
		l.admit(l.Users, uid, endpoint, h, w, r)
	}
}

// IP guards h with the address-keyed policy, for unauthenticated endpoints
func (l *Limiter) IP(endpoint string, h phttp.Handler) phttp.Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		l.admit(l.IPs, clientIP(r), endpoint, h, w, r)
	}
}

func (l *Limiter) admit(p *ratelimit.Policy, actor, endpoint string, h phttp.Handler, w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if p == nil {
		h(w, r)
		return
	}
	d := p.Allow(actor, endpoint)

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

	if d.Allowed {
		h(w, r)
		return
	}

	retry := d.RetryAfter(time.Now())
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	phttp.JSON(w, stdhttp.StatusTooManyRequests, limitWire{
		Message:    "Rate limit exceeded. Try again in " + strconv.Itoa(retry) + " seconds.",
		RetryAfter: retry,
		Limit:      d.Limit,
		Window:     int(d.Window / time.Second),
	})
}

// clientIP returns the host part of RemoteAddr
// mount after the real-ip middleware so proxy headers are already folded in
func clientIP(r *stdhttp.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}
