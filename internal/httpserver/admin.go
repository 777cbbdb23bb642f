package httpserver

import (
	"sort"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
)

const topBlogViews = 5

// topViewed sorts the blog-views list by views descending and keeps the
// first n. The only client-side computation the dashboard does.
func topViewed(views []models.BlogViewCount, n int) []models.BlogViewCount {
	out := make([]models.BlogViewCount, len(views))
	copy(out, views)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (h *Handler) AdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_dashboard")

	statsRange := c.QueryParam("range")
	if !api.ValidRange(statsRange) {
		statsRange = api.RangeMonthly
	}

	state := middleware.SessionFrom(c)
	stats, err := h.API.SiteStats(ctx, state.AccessToken, statsRange)
	if err != nil {
		l.Warn("stats_load_failed", "range", statsRange, "error", err)
		return h.render(c, "admin_dashboard", map[string]any{
			"Flash": &Flash{Level: "error", Message: "Failed to load stats!"},
			"Stats": &models.SiteStats{},
			"Range": statsRange,
		})
	}

	return h.render(c, "admin_dashboard", map[string]any{
		"Stats":    stats,
		"Range":    statsRange,
		"Ranges":   []string{api.RangeDaily, api.RangeWeekly, api.RangeMonthly, api.RangeQuarterly, api.RangeYearly},
		"TopViews": topViewed(stats.BlogViews, topBlogViews),
	})
}
