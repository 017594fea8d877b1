package aspen

// Context is the identity every request of a Client is issued under. It is
// built once per Client and never changes afterwards.
type Context struct {
	appKey    string
	appSecret string
	deviceID  string
	username  string
	token     string
}

func newContext(cfg *Config) *Context {
	return &Context{
		appKey:    cfg.AppKey,
		appSecret: cfg.AppSecret,
		deviceID:  cfg.DeviceID,
		username:  cfg.Username,
		token:     cfg.Token,
	}
}

// AppKey returns the application key.
func (c *Context) AppKey() string { return c.appKey }

// DeviceID returns the device identifier.
func (c *Context) DeviceID() string { return c.deviceID }

// Username returns the signed-in user, or "" for an application client.
func (c *Context) Username() string { return c.username }

// SessionToken returns the session token, or "" for an application client.
func (c *Context) SessionToken() string { return c.token }

// Authenticated reports whether the context carries a session token.
func (c *Context) Authenticated() bool { return c.token != "" }

// withSession returns a copy of c carrying a session.
func (c *Context) withSession(username, token string) *Context {
	next := *c
	next.username = username
	next.token = token
	return &next
}
