package postview

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/postview/corpus"
)

// handleHome serves the post listing page. The tag and sort query params are
// the two UI signals: when present they update the view state before the
// display list is recomputed. HTMX partial responses swap only the list
// section on signal clicks.
func (a *App) handleHome(c echo.Context) error {
	params := c.QueryParams()
	if params.Has("tag") {
		a.Library.SetActiveTag(params.Get("tag"))
	}
	if params.Has("sort") {
		a.Library.SetSortOrder(corpus.ParseSortOrder(params.Get("sort")))
	}

	posts := a.Library.View()
	tags := a.Library.Tags()
	state := a.Library.ViewState()
	status := a.Library.Status()

	if c.Request().Header.Get("HX-Request") == "true" {
		switch c.QueryParam("partial") {
		case "list":
			return Render(c, a.Views.PostList(posts, state, tags))
		case "home":
			return Render(c, a.Views.HomePartial(posts, state, tags, status))
		}
	}
	return Render(c, a.Views.Home(posts, state, tags, status, a.Config.URL))
}

// handlePost serves a single post page by slug.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, ok := a.Library.Post(slug)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.Post(post, a.Config.URL))
}

// handleStatus exposes the load status plus corpus summary as JSON for the
// render collaborator.
func (a *App) handleStatus(c echo.Context) error {
	status := a.Library.Status()
	return c.JSON(http.StatusOK, map[string]any{
		"state": status.State.String(),
		"error": status.Err,
		"stale": status.Stale,
		"posts": a.Library.Len(),
		"tags":  a.Library.Tags(),
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Library.All())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Library.All())
}

func handlePostsRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
