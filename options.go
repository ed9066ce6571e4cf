package sonet

import (
	"net/http"
	"time"

	"github.com/jointwt/sonet/timeline"
)

// Option is a function that takes a config struct and modifies it
type Option func(*Config) error

// WithConfig replaces the whole configuration
func WithConfig(conf *Config) Option {
	return func(cfg *Config) error {
		*cfg = *conf
		return nil
	}
}

// WithURI sets the base URI of the backend API
func WithURI(uri string) Option {
	return func(cfg *Config) error {
		cfg.URI = uri
		return nil
	}
}

// WithStore sets the token store to use
func WithStore(store string) Option {
	return func(cfg *Config) error {
		cfg.Store = store
		return nil
	}
}

// WithPageSize sets the number of posts loaded per timeline page
func WithPageSize(size int) Option {
	return func(cfg *Config) error {
		cfg.PageSize = size
		return nil
	}
}

// WithProfileCacheTTL sets how long other users' profiles are cached
func WithProfileCacheTTL(ttl time.Duration) Option {
	return func(cfg *Config) error {
		cfg.ProfileCacheTTL = ttl
		return nil
	}
}

// WithRefreshInterval sets the cron spec of the timeline refresh job
func WithRefreshInterval(spec string) Option {
	return func(cfg *Config) error {
		cfg.RefreshInterval = spec
		return nil
	}
}

// WithHTTPClient sets the HTTP client used to talk to the backend
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *Config) error {
		cfg.HTTPClient = hc
		return nil
	}
}

// WithNotifier sets where user-facing failure notices go
func WithNotifier(n timeline.Notifier) Option {
	return func(cfg *Config) error {
		cfg.Notifier = n
		return nil
	}
}
