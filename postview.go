// Package postview loads a collection of posts from a JSON or XML source
// document, normalizes it into one immutable corpus, and serves an
// always-consistent filtered/sorted view of it built with Go, Echo, and
// templ.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// postview handles loading, normalization, view recomputation, status
// reporting, feeds, and the admin/reload surface. The ingestion and view
// derivation core lives in the corpus subpackage.
package postview

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/postview/corpus"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home           func(posts []corpus.Post, state corpus.ViewState, tags []string, status Status, siteURL string) templ.Component
	HomePartial    func(posts []corpus.Post, state corpus.ViewState, tags []string, status Status) templ.Component
	PostList       func(posts []corpus.Post, state corpus.ViewState, tags []string) templ.Component
	Post           func(post corpus.Post, siteURL string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(status Status, postCount int, tags []string, history []LoadRecord, message, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central postview application. It owns the load sequence, the
// library holding corpus and view state, and the HTTP surface that forwards
// UI signals into view recomputation.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Library *Library
	Store   *Store
	Views   ViewFuncs

	fetcher      Fetcher
	gate         loadGate
	loginLimiter *attemptLimiter
	customRoutes []func(*App)
	staticDir    string
	thumbs       *thumbCache
}

// New creates a postview App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		thumbs:    newThumbCache(),
	}
	a.Library = NewLibrary()

	for _, opt := range opts {
		opt(a)
	}

	if a.fetcher == nil {
		a.fetcher = NewFetcher(cfg.DataFile, nil)
	}
	return a
}

// Start initializes the store, middleware, and routes, kicks off the initial
// load, and starts the server.
func (a *App) Start() error {
	if a.Config.DataFile == "" {
		return fmt.Errorf("postview: DataFile is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("postview: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("postview: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("postview: init store: %w", err)
	}
	a.Store = store

	a.loginLimiter = newAttemptLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	// The initial load is the one asynchronous suspension point; the server
	// comes up immediately in the "loading" state and transitions once the
	// fetch resolves.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.FetchTimeout)
		defer cancel()
		if err := a.Load(ctx); err != nil {
			log.Printf("postview: initial load: %v", err)
		}
	}()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve embedded framework assets (filter.js, postview.css). These fall
	// through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/filter.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/postview.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/status.json", a.handleStatus)
	e.GET("/posts", handlePostsRedirect)
	e.GET("/", a.handleHome)
	e.GET("/post/:slug/", a.handlePost)
	e.GET("/thumb/:filename", a.handleThumb)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/reload/", a.handleAdminReload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("postview: required environment variable %s is not set", key)
	}
	return v
}
