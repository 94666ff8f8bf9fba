package module

import "codenest/internal/platform/config"

// Options configures the snippets module
type Options struct {
	// CryptoKey is the base64-encoded 32-byte key for content at rest
	CryptoKey string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CORE_CRYPTO_")
	return Options{
		CryptoKey: cc.MustString("KEY"),
	}
}
