package httpserver

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogfront/internal/logging"
	"blogfront/internal/middleware"
)

func (h *Handler) ProfilePicturePage(c echo.Context) error {
	return h.render(c, "profile_picture", nil)
}

// UploadProfilePicture pushes the new picture and then re-fetches the
// profile so the cached blob in the session row matches the server.
func (h *Handler) UploadProfilePicture(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_profile_picture")

	state := middleware.SessionFrom(c)

	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return h.render(c, "profile_picture", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Please select a valid image first!"},
		})
	}
	if msg := validateProfilePicture(fh.Filename, fh.Size); msg != "" {
		return h.render(c, "profile_picture", map[string]any{
			"Flash": &Flash{Level: "error", Message: msg},
		})
	}

	f, err := fh.Open()
	if err != nil {
		return h.render(c, "profile_picture", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Could not read the uploaded image."},
		})
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return h.render(c, "profile_picture", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Could not read the uploaded image."},
		})
	}

	if err := h.API.UploadProfilePicture(ctx, state.AccessToken, fh.Filename, data); err != nil {
		l.Warn("profile_picture_upload_failed", "error", err)
		return h.render(c, "profile_picture", map[string]any{
			"Flash": &Flash{Level: "error", Message: messageFor(err, "upload the profile picture")},
		})
	}

	user, err := h.API.Me(ctx, state.AccessToken)
	if err != nil {
		l.Warn("profile_refetch_failed", "error", err)
	} else if sid := middleware.SIDFrom(c); sid != "" {
		if err := h.Sessions.SetUser(sid, *user); err != nil {
			l.Warn("session_refresh_failed", "error", err)
		}
	}

	l.Info("profile_picture_updated")
	flashSuccess(c, "Profile picture updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/upload-profile")
}
