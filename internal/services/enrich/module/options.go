package module

import (
	"time"

	"codenest/internal/platform/config"
)

// Options configures the enrichment module
type Options struct {
	Enabled bool

	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	Workers int
	Queue   int
	Grace   time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_AI_")
	enabled := ac.MayBool("ENABLED", true)
	o := Options{
		Enabled: enabled,
		Model:   ac.MayString("MODEL", ""),
		Timeout: ac.MayDuration("TIMEOUT", 30*time.Second),
		Workers: ac.MayInt("WORKERS", 2),
		Queue:   ac.MayInt("QUEUE", 64),
		Grace:   ac.MayDuration("GRACE", 10*time.Second),
	}
	if enabled {
		o.BaseURL = ac.MustString("BASE_URL")
		o.APIKey = ac.MayString("API_KEY", "")
	}
	return o
}
