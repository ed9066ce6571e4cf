// Package router maps named routes and paths to locations and guards every
// transition with the session's authentication state.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrRouteNotFound ...
	ErrRouteNotFound = errors.New("error: route not found")

	// ErrMissingParam ...
	ErrMissingParam = errors.New("error: missing route parameter")
)

// AuthState is what the guard needs to know about the session
type AuthState interface {
	IsAuthenticated() bool
	ClearError()
}

// Location is a resolved route
type Location struct {
	Name   string
	Path   string
	Params httprouter.Params
}

// Listener is notified after every completed transition
type Listener func(from, to Location)

// Router ...
type Router struct {
	mu sync.RWMutex

	// paths extracts parameters; byPath maps the matched pattern back to
	// its route
	paths  *httprouter.Router
	byPath map[string]*Route
	routes map[string]*Route
	auth   AuthState

	current   Location
	listeners []Listener
}

// New builds a router over routes, or DefaultRoutes when none are given
func New(auth AuthState, routes ...Route) *Router {
	if len(routes) == 0 {
		routes = DefaultRoutes
	}

	r := &Router{
		paths:  httprouter.New(),
		byPath: make(map[string]*Route),
		routes: make(map[string]*Route),
		auth:   auth,
	}

	for _, leaf := range flatten(routes, "", Meta{}) {
		route := leaf
		r.routes[route.Name] = &route
		r.byPath[route.Path] = &route
		r.paths.GET(route.Path, noop)
	}

	return r
}

// OnNavigate registers a listener
func (r *Router) OnNavigate(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// Current returns the current location
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Lookup resolves a path to its route
func (r *Router) Lookup(p string) (Location, Meta, error) {
	handle, params, _ := r.paths.Lookup(http.MethodGet, p)
	if handle == nil {
		return Location{}, Meta{}, fmt.Errorf("%w: %s", ErrRouteNotFound, p)
	}

	route, ok := r.byPath[pattern(p, params)]
	if !ok {
		return Location{}, Meta{}, fmt.Errorf("%w: %s", ErrRouteNotFound, p)
	}

	return Location{Name: route.Name, Path: p, Params: params}, route.Meta, nil
}

func noop(http.ResponseWriter, *http.Request, httprouter.Params) {}

// pattern puts the parameter names back in place of their values. Params
// are matched from the end so a static segment equal to a later value
// stays static.
func pattern(p string, params httprouter.Params) string {
	segs := strings.Split(p, "/")
	j := len(params) - 1
	for i := len(segs) - 1; i >= 0 && j >= 0; i-- {
		if segs[i] == params[j].Value {
			segs[i] = ":" + params[j].Key
			j--
		}
	}
	return strings.Join(segs, "/")
}

// URL builds the path of a named route
func (r *Router) URL(name string, params map[string]string) (string, error) {
	route, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	parts := strings.Split(route.Path, "/")
	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			continue
		}
		v, ok := params[part[1:]]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: %s for %s", ErrMissingParam, part[1:], name)
		}
		parts[i] = v
	}
	return strings.Join(parts, "/"), nil
}

// Push navigates to a named route without parameters
func (r *Router) Push(name string) error {
	return r.PushParams(name, nil)
}

// PushParams navigates to a named route
func (r *Router) PushParams(name string, params map[string]string) error {
	p, err := r.URL(name, params)
	if err != nil {
		return err
	}
	return r.Navigate(p)
}

// Navigate runs the guard for the route at path and moves there, or to the
// route the guard redirects to. The session's stale error is cleared first.
func (r *Router) Navigate(p string) error {
	to, meta, err := r.Lookup(p)
	if err != nil {
		return err
	}

	r.auth.ClearError()

	if redirect := Guard(meta, r.auth.IsAuthenticated()); redirect != "" {
		log.Debugf("redirecting %s -> %s", to.Name, redirect)
		rp, err := r.URL(redirect, nil)
		if err != nil {
			return err
		}
		if to, _, err = r.Lookup(rp); err != nil {
			return err
		}
	}

	r.mu.Lock()
	from := r.current
	r.current = to
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, to)
	}

	return nil
}
