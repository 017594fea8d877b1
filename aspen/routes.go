package aspen

// Route is an endpoint of the service, relative to Config.BaseURL.
type Route struct {
	path string
}

// Path returns the relative path, e.g. "users/pin".
func (r Route) Path() string { return r.path }

// IsZero reports whether r is the zero Route.
func (r Route) IsZero() bool { return r.path == "" }

func (r Route) String() string { return r.path }

// UserRoutes are the endpoints of the current-user capability.
type UserRoutes struct {
	Pin            Route
	ActivationCode Route
}

// TokenRoutes are the endpoints for single-use tokens.
type TokenRoutes struct {
	Request Route
}

// AuthRoutes are the session endpoints.
type AuthRoutes struct {
	SignIn Route
}

// RouteTable lists every endpoint the SDK calls.
type RouteTable struct {
	Users  UserRoutes
	Tokens TokenRoutes
	Auth   AuthRoutes
}

var routes = RouteTable{
	Users: UserRoutes{
		Pin:            Route{path: "users/pin"},
		ActivationCode: Route{path: "users/activation-code"},
	},
	Tokens: TokenRoutes{
		Request: Route{path: "tokens/request"},
	},
	Auth: AuthRoutes{
		SignIn: Route{path: "auth/signin"},
	},
}

// Routes returns a copy of the endpoint table.
func Routes() RouteTable {
	return routes
}
