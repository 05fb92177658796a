package postview

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminReload triggers a fresh load of the source document. A load
// already in flight is rejected with 409 rather than superseded.
func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	err := a.Load(c.Request().Context())
	switch {
	case errors.Is(err, ErrLoadInFlight):
		return c.String(http.StatusConflict, "A load is already in flight.")
	case err != nil:
		log.Printf("postview: reload: %v", err)
		return a.renderAdminDashboard(c, "Reload failed: "+err.Error())
	}
	return a.renderAdminDashboard(c, "Reloaded.")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	var history []LoadRecord
	if a.Store != nil {
		var err error
		history, err = a.Store.RecentLoads(20)
		if err != nil {
			return err
		}
	}
	status := a.Library.Status()
	return Render(c, a.Views.AdminDashboard(status, a.Library.Len(), a.Library.Tags(), history, msg, CsrfToken(c)))
}
