package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/config"
	"blogfront/internal/middleware"
	"blogfront/internal/search"
	"blogfront/internal/session"
)

// Handler bundles what every view controller needs: the outbound API
// client, the injected session store and the app configuration.
type Handler struct {
	Cfg      *config.Config
	API      *api.Client
	Sessions *session.Store
	Debounce *search.Debouncer
}

func (h *Handler) render(c echo.Context, page string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if state := middleware.SessionFrom(c); state != nil && state.AccessToken != "" {
		data["Session"] = state
		data["IsAdmin"] = state.IsAdmin()
		data["Username"] = state.Username()
	}
	if _, ok := data["Flash"]; !ok {
		if f := takeFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	return c.Render(http.StatusOK, page, data)
}

func setSIDCookie(c echo.Context, sid string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSIDCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// messageFor turns a classified API error into the user-visible
// notification. Callers that need a more specific wording for one kind
// handle that kind before falling back here.
func messageFor(err error, action string) string {
	switch api.KindOf(err) {
	case api.KindNetwork:
		return "Could not reach the server. Please try again."
	case api.KindUnauthorized:
		return "You need to log in to " + action + "."
	case api.KindForbidden:
		return "You do not have permission to " + action + "."
	case api.KindValidation:
		if apiErr, ok := err.(*api.Error); ok && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Some fields are invalid. Please check your input."
	case api.KindNotFound:
		return "The requested resource was not found."
	case api.KindConflict:
		return "This conflicts with something that already exists."
	default:
		return "Failed to " + action + ". Please try again."
	}
}
