package module

import (
	"time"

	"codenest/internal/platform/config"
)

// Options configures the users module
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_AUTH_")
	return Options{
		JWTSecret: ac.MustString("JWT_SECRET"),
		TokenTTL:  ac.MayDuration("TOKEN_TTL", 24*time.Hour),
	}
}
