package router

// Guard decides whether a transition to a route with the given meta may
// proceed. It returns the name of the route to redirect to, or "" to allow.
func Guard(to Meta, authenticated bool) string {
	switch {
	case to.RequiresAuth && !authenticated:
		return Login
	case to.RequiresGuest && authenticated:
		return Home
	default:
		return ""
	}
}
