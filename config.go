package postview

import (
	"net/http"
	"time"
)

// Config holds all configuration for a postview site.
type Config struct {
	Name        string // Site name (default "Posts")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr     string // Listen address (default ":3000")
	DataFile string // Required: path or http(s) URL of the source document (.json or .xml)

	DatabasePath     string // SQLite path for the corpus archive and load audit log (default "data/postview.db")
	SnapshotFallback bool   // Serve the last archived corpus when a load fails (default off: a failed load leaves the corpus empty)

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	FetchTimeout time.Duration // Timeout for the initial fetch (default 30s)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Posts"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/postview.db"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 30 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithFetcher replaces the fetch collaborator that supplies raw source text.
func WithFetcher(f Fetcher) Option {
	return func(a *App) {
		a.fetcher = f
	}
}

// WithHTTPClient sets the client used when DataFile is an http(s) URL.
func WithHTTPClient(client *http.Client) Option {
	return func(a *App) {
		a.fetcher = NewFetcher(a.Config.DataFile, client)
	}
}

// WithStatusListener registers a callback invoked on every load status
// transition (loading, error, ready). This is the render collaborator's
// status channel.
func WithStatusListener(fn func(Status)) Option {
	return func(a *App) {
		a.Library.onStatus = fn
	}
}
