package api

import (
	"context"
	"net/http"
	"net/url"

	"blogfront/internal/models"
)

// Ranges accepted by GET /stats/.
const (
	RangeDaily     = "daily"
	RangeWeekly    = "weekly"
	RangeMonthly   = "monthly"
	RangeQuarterly = "quarterly"
	RangeYearly    = "yearly"
)

func ValidRange(r string) bool {
	switch r {
	case RangeDaily, RangeWeekly, RangeMonthly, RangeQuarterly, RangeYearly:
		return true
	}
	return false
}

func (c *Client) SiteStats(ctx context.Context, token, statsRange string) (*models.SiteStats, error) {
	path := "/stats/"
	if statsRange != "" {
		path += "?range=" + url.QueryEscape(statsRange)
	}
	var stats models.SiteStats
	if err := c.do(ctx, http.MethodGet, path, token, nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
