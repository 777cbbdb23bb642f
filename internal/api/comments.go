package api

import (
	"context"
	"fmt"
	"net/http"

	"blogfront/internal/models"
)

func (c *Client) ListComments(ctx context.Context, token string, blogID int) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/blogs/%d/comments/", blogID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, "", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, token string, blogID int, content string) (*models.Comment, error) {
	var comment models.Comment
	path := fmt.Sprintf("/blogs/%d/comments/", blogID)
	req := map[string]string{"content": content}
	if err := c.doJSON(ctx, http.MethodPost, path, token, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, token string, commentID int) error {
	path := fmt.Sprintf("/blogs/comments/%d/delete/", commentID)
	return c.do(ctx, http.MethodDelete, path, token, nil, "", nil)
}
