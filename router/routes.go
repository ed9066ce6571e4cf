package router

import (
	"path"
)

// Route names
const (
	Home     = "Home"
	Profile  = "Profile"
	Friends  = "Friends"
	Login    = "Login"
	Register = "Register"
)

// Meta holds the guard requirements of a route. Children inherit the
// requirements of their parents.
type Meta struct {
	// RequiresAuth routes redirect anonymous users to Login
	RequiresAuth bool

	// RequiresGuest routes redirect authenticated users to Home
	RequiresGuest bool
}

func (m Meta) merge(child Meta) Meta {
	return Meta{
		RequiresAuth:  m.RequiresAuth || child.RequiresAuth,
		RequiresGuest: m.RequiresGuest || child.RequiresGuest,
	}
}

// Route ...
type Route struct {
	Name     string
	Path     string
	Meta     Meta
	Children []Route
}

// DefaultRoutes is the application's route table
var DefaultRoutes = []Route{
	{
		Path: "/",
		Meta: Meta{RequiresAuth: true},
		Children: []Route{
			{Path: "", Name: Home},
			{Path: "profile/:userId", Name: Profile},
			{Path: "friends", Name: Friends},
		},
	},
	{
		Path: "/auth",
		Meta: Meta{RequiresGuest: true},
		Children: []Route{
			{Path: "login", Name: Login},
			{Path: "register", Name: Register},
		},
	},
}

// flatten resolves nested routes into named leaves with full paths and
// inherited meta
func flatten(routes []Route, prefix string, meta Meta) []Route {
	var leaves []Route
	for _, r := range routes {
		full := joinPath(prefix, r.Path)
		m := meta.merge(r.Meta)
		if r.Name != "" {
			leaves = append(leaves, Route{Name: r.Name, Path: full, Meta: m})
		}
		leaves = append(leaves, flatten(r.Children, full, m)...)
	}
	return leaves
}

func joinPath(prefix, p string) string {
	if prefix == "" {
		prefix = "/"
	}
	if p == "" {
		return prefix
	}
	return path.Join(prefix, p)
}
