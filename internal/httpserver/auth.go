package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/session"
)

func (h *Handler) Landing(c echo.Context) error {
	if state := middleware.SessionFrom(c); state != nil && state.AccessToken != "" {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	return h.render(c, "landing", nil)
}

func (h *Handler) LoginPage(c echo.Context) error {
	return h.render(c, "login", map[string]any{"Username": ""})
}

func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	username := c.FormValue("username")
	password := c.FormValue("password")

	res, err := h.API.Login(ctx, username, password)
	if err != nil {
		var msg string
		switch api.KindOf(err) {
		case api.KindUnauthorized:
			msg = "Invalid username or password."
		case api.KindNotFound:
			msg = "Login service is misconfigured. Please contact support."
		default:
			msg = messageFor(err, "log in")
		}
		l.Warn("login_failed", "error", err)
		return h.render(c, "login", map[string]any{
			"Flash":    &Flash{Level: "error", Message: msg},
			"Username": username,
		})
	}

	sid := middleware.SIDFrom(c)
	if sid == "" {
		sid = uuid.NewString()
	}
	state := session.State{
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
		User:         res.User,
	}
	if err := h.Sessions.Set(sid, state); err != nil {
		l.Error("session_write_failed", "error", err)
		return h.render(c, "login", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Could not start a session. Please try again."},
		})
	}
	setSIDCookie(c, sid)

	l.Info("login_successful", "username", username)
	flashSuccess(c, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, "/home")
}

func (h *Handler) RegisterPage(c echo.Context) error {
	return h.render(c, "register", map[string]any{"Username": "", "Email": ""})
}

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "register")

	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	password2 := c.FormValue("password2")

	// Blocked locally; no request leaves when the two fields disagree.
	if password != password2 {
		return h.render(c, "register", map[string]any{
			"Flash":    &Flash{Level: "error", Message: "Passwords do not match!"},
			"Username": username,
			"Email":    email,
		})
	}

	if err := h.API.Register(ctx, username, email, password, password2); err != nil {
		l.Warn("register_failed", "error", err)
		return h.render(c, "register", map[string]any{
			"Flash":    &Flash{Level: "error", Message: messageFor(err, "register")},
			"Username": username,
			"Email":    email,
		})
	}

	l.Info("register_successful", "username", username)
	flashSuccess(c, "Registered successfully!")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) ForgotPasswordPage(c echo.Context) error {
	return h.render(c, "forgot_password", nil)
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "forgot_password")

	email := c.FormValue("email")
	if err := h.API.ResetPassword(ctx, email); err != nil {
		l.Warn("reset_request_failed", "error", err)
		return h.render(c, "forgot_password", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Error sending password reset link!"},
		})
	}
	return h.render(c, "forgot_password", map[string]any{
		"Flash": &Flash{Level: "success", Message: "Password reset link sent to your email!"},
	})
}

func (h *Handler) ResetPasswordPage(c echo.Context) error {
	return h.render(c, "reset_password", map[string]any{
		"UID":   c.Param("uid"),
		"Token": c.Param("token"),
	})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reset_password")

	uid := c.Param("uid")
	token := c.Param("token")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if newPassword != confirm {
		return h.render(c, "reset_password", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Passwords do not match!"},
			"UID":   uid,
			"Token": token,
		})
	}

	if err := h.API.ResetPasswordConfirm(ctx, uid, token, newPassword); err != nil {
		l.Warn("reset_confirm_failed", "error", err)
		msg := messageFor(err, "reset your password")
		if apiErr, ok := err.(*api.Error); ok && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return h.render(c, "reset_password", map[string]any{
			"Flash": &Flash{Level: "error", Message: msg},
			"UID":   uid,
			"Token": token,
		})
	}

	flashSuccess(c, "Password reset successfully!")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logout")

	if sid := middleware.SIDFrom(c); sid != "" {
		if err := h.Sessions.Clear(sid); err != nil {
			l.Error("logout_failed", "error", err)
		}
	}
	clearSIDCookie(c)

	l.Info("logout_successful")
	return c.Redirect(http.StatusSeeOther, "/login")
}
