package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/session"
)

const (
	CookieName = "sid"

	CtxSID     = "sid"
	CtxSession = "session"
)

// Guard gates routes on the local session, optionally revalidated
// against the API. It runs before the view controller mounts.
type Guard struct {
	Store *session.Store
	API   *api.Client
}

// LoadSession resolves the sid cookie into a session state for every
// request. A missing or unknown cookie leaves the state nil.
func (g *Guard) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
			c.Set(CtxSID, cookie.Value)
			state, err := g.Store.Current(cookie.Value)
			if err != nil {
				logging.FromContext(c.Request().Context()).Error("session_load_failed", "error", err)
			} else if state != nil {
				c.Set(CtxSession, state)
			}
		}
		return next(c)
	}
}

// RequireSession redirects anonymous visitors to the login page.
func (g *Guard) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := SessionFrom(c)
		if state == nil || state.AccessToken == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireAdmin admits admins only. Role is resolved locally first; a
// negative local answer is revalidated once against /auth/me/. Any
// fetch failure counts as unauthorized, there is no retry.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := SessionFrom(c)
		if state == nil || state.AccessToken == "" {
			return c.Redirect(http.StatusSeeOther, "/home")
		}
		if state.IsAdmin() {
			return next(c)
		}

		ctx := c.Request().Context()
		user, err := g.API.Me(ctx, state.AccessToken)
		if err != nil {
			logging.FromContext(ctx).Warn("admin_check_failed", "error", err)
			return c.Redirect(http.StatusSeeOther, "/home")
		}
		if !user.IsAdministrator() {
			return c.Redirect(http.StatusSeeOther, "/home")
		}

		// Keep the cached blob in line with what the server just said.
		if sid := SIDFrom(c); sid != "" {
			if err := g.Store.SetUser(sid, *user); err != nil {
				logging.FromContext(ctx).Warn("session_refresh_failed", "error", err)
			}
		}
		state.User = *user
		return next(c)
	}
}

func SessionFrom(c echo.Context) *session.State {
	state, _ := c.Get(CtxSession).(*session.State)
	return state
}

func SIDFrom(c echo.Context) string {
	sid, _ := c.Get(CtxSID).(string)
	return sid
}
