package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
)

// Categories renders the admin category list. An `edit` query parameter
// switches the matching row into its inline edit state.
func (h *Handler) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories")

	state := middleware.SessionFrom(c)
	categories, err := h.API.ListCategories(ctx, state.AccessToken)
	if err != nil {
		l.Warn("categories_load_failed", "error", err)
		return h.render(c, "categories", map[string]any{
			"Flash":      &Flash{Level: "error", Message: "Failed to load categories!"},
			"Categories": []models.Category{},
		})
	}

	editID, _ := strconv.Atoi(c.QueryParam("edit"))
	return h.render(c, "categories", map[string]any{
		"Categories": categories,
		"EditID":     editID,
	})
}

func categoryErrorMessage(err error) string {
	if api.KindOf(err) == api.KindConflict {
		return "A category with this name already exists."
	}
	if api.KindOf(err) == api.KindForbidden {
		return "You must be an admin to manage categories."
	}
	return "Something went wrong. Please try again."
}

func (h *Handler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_category")

	state := middleware.SessionFrom(c)
	name := strings.TrimSpace(c.FormValue("name"))
	description := c.FormValue("description")

	if name == "" {
		flashError(c, "Category name is required.")
		return c.Redirect(http.StatusSeeOther, "/categories")
	}

	cat, err := h.API.CreateCategory(ctx, state.AccessToken, name, description)
	if err != nil {
		l.Warn("category_create_failed", "name", name, "error", err)
		flashError(c, categoryErrorMessage(err))
		return c.Redirect(http.StatusSeeOther, "/categories")
	}

	l.Info("category_created", "name", cat.Name)
	flashSuccess(c, "Category \""+cat.Name+"\" created successfully.")
	return c.Redirect(http.StatusSeeOther, "/categories")
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_category")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category id must be an integer")
	}
	state := middleware.SessionFrom(c)
	name := strings.TrimSpace(c.FormValue("name"))
	description := c.FormValue("description")

	if name == "" {
		flashError(c, "Category name is required.")
		return c.Redirect(http.StatusSeeOther, "/categories")
	}

	if _, err := h.API.UpdateCategory(ctx, state.AccessToken, id, name, description); err != nil {
		l.Warn("category_update_failed", "category_id", id, "error", err)
		flashError(c, categoryErrorMessage(err))
		return c.Redirect(http.StatusSeeOther, "/categories")
	}

	l.Info("category_updated", "category_id", id)
	flashSuccess(c, "Category updated.")
	return c.Redirect(http.StatusSeeOther, "/categories")
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_category")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category id must be an integer")
	}
	state := middleware.SessionFrom(c)

	if err := h.API.DeleteCategory(ctx, state.AccessToken, id); err != nil {
		l.Warn("category_delete_failed", "category_id", id, "error", err)
		flashError(c, categoryErrorMessage(err))
	} else {
		l.Info("category_deleted", "category_id", id)
		flashSuccess(c, "Category deleted.")
	}
	return c.Redirect(http.StatusSeeOther, "/categories")
}
