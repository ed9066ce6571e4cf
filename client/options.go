package client

import (
	"net/http"
	"os"
)

const (
	// DefaultURI is the default base URI to use for the social network API endpoint
	DefaultURI = "http://localhost:8080/api/"
)

// TokenSource yields the bearer token to attach to a request, or "" for none
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to a TokenSource
type TokenSourceFunc func() string

// Token ...
func (f TokenSourceFunc) Token() string {
	return f()
}

// staticToken ...
type staticToken string

func (t staticToken) Token() string {
	return string(t)
}

// UnauthorizedHandler is called whenever a response reports that the
// session is no longer valid
type UnauthorizedHandler func(err *APIError)

// Config ...
type Config struct {
	URI       string
	UserAgent string

	TokenSource  TokenSource
	HTTPClient   *http.Client
	Unauthorized []UnauthorizedHandler
}

// NewConfig ...
func NewConfig() *Config {
	return &Config{
		URI:         DefaultURI,
		UserAgent:   DefaultUserAgent,
		TokenSource: staticToken(os.Getenv("SONET_TOKEN")),
		HTTPClient:  http.DefaultClient,
	}
}

// Option is a function that takes a config struct and modifies it
type Option func(*Config) error

// WithURI sets the base URI to used for the API endpoint
func WithURI(uri string) Option {
	return func(cfg *Config) error {
		cfg.URI = uri
		return nil
	}
}

// WithToken sets a fixed API token to use for authenticating to endpoints
func WithToken(token string) Option {
	return func(cfg *Config) error {
		cfg.TokenSource = staticToken(token)
		return nil
	}
}

// WithTokenSource sets the source the token is read from on every request
func WithTokenSource(src TokenSource) Option {
	return func(cfg *Config) error {
		cfg.TokenSource = src
		return nil
	}
}

// WithHTTPClient sets the underlying transport
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *Config) error {
		cfg.HTTPClient = hc
		return nil
	}
}

// WithUserAgent ...
func WithUserAgent(ua string) Option {
	return func(cfg *Config) error {
		cfg.UserAgent = ua
		return nil
	}
}

// WithUnauthorizedHandler registers a handler observing 401 responses
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(cfg *Config) error {
		cfg.Unauthorized = append(cfg.Unauthorized, h)
		return nil
	}
}
