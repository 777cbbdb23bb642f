package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
)

const defaultPageSize = 10

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return def
	}
	return n
}

// Home renders the feed: paginated blogs with category filter, search
// term and sort order. A failed fetch leaves the feed empty, never a
// broken page.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "home")

	var token string
	if state := middleware.SessionFrom(c); state != nil {
		token = state.AccessToken
	}

	params := api.ListParams{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		PageSize: defaultPageSize,
	}
	if params.Sort == "" {
		params.Sort = api.SortNewest
	}

	data := map[string]any{
		"Search":   params.Search,
		"Category": params.Category,
		"Sort":     params.Sort,
	}

	categories, err := h.API.ListCategories(ctx, token)
	if err != nil {
		l.Warn("categories_load_failed", "error", err)
		flashError(c, "Failed to load categories!")
		categories = nil
	}
	data["Categories"] = categories

	page, err := h.API.ListBlogs(ctx, token, params)
	if err != nil {
		l.Warn("blogs_load_failed", "error", err)
		data["Flash"] = &Flash{Level: "error", Message: "Failed to load blogs!"}
		data["Page"] = &models.BlogPage{CurrentPage: params.Page}
		return h.render(c, "home", data)
	}

	data["Page"] = page
	return h.render(c, "home", data)
}

// SearchBlogs is the live-search endpoint behind the feed's search box.
// Requests are debounced per session and stale responses are dropped,
// so of several rapid terms only the newest one produces a reply.
func (h *Handler) SearchBlogs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search_blogs")

	var token string
	key := c.RealIP()
	if state := middleware.SessionFrom(c); state != nil {
		token = state.AccessToken
	}
	if sid := middleware.SIDFrom(c); sid != "" {
		key = sid
	}

	params := api.ListParams{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Page:     1,
		PageSize: defaultPageSize,
	}
	if params.Sort == "" {
		params.Sort = api.SortNewest
	}

	res, ok, err := h.Debounce.Do(ctx, key, func(ctx context.Context) (any, error) {
		return h.API.ListBlogs(ctx, token, params)
	})
	if !ok {
		// Superseded by a newer term; the newer request will answer.
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		l.Warn("search_failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search failed")
	}

	return c.JSON(http.StatusOK, res)
}
