package api

import (
	"context"
	"fmt"
	"net/http"

	"blogfront/internal/models"
)

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", token, nil, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, token string, id int) (*models.Category, error) {
	var cat models.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/", id), token, nil, "", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name, description string) (*models.Category, error) {
	var cat models.Category
	req := map[string]string{"name": name, "description": description}
	if err := c.doJSON(ctx, http.MethodPost, "/categories/", token, req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int, name, description string) (*models.Category, error) {
	var cat models.Category
	req := map[string]string{"name": name, "description": description}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d/", id), token, req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), token, nil, "", nil)
}
