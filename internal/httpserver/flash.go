package httpserver

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookie = "flash"

// Flash is a one-shot notification surfaced on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

func setFlash(c echo.Context, level, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func flashSuccess(c echo.Context, message string) { setFlash(c, "success", message) }
func flashError(c echo.Context, message string)   { setFlash(c, "error", message) }

// takeFlash reads and clears the pending notification, if any.
func takeFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Level: "info", Message: raw}
	}
	return &Flash{Level: level, Message: message}
}
