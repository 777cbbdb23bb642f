package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"blogfront/internal/models"
)

// Sort orders accepted by GET /blogs/.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
)

type ListParams struct {
	Search   string
	Category string
	Sort     string
	Page     int
	PageSize int
	Mine     bool
}

func (p ListParams) encode() string {
	q := url.Values{}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Mine {
		q.Set("mine", "true")
	}
	return q.Encode()
}

func (c *Client) ListBlogs(ctx context.Context, token string, params ListParams) (*models.BlogPage, error) {
	path := "/blogs/"
	if q := params.encode(); q != "" {
		path += "?" + q
	}
	var page models.BlogPage
	if err := c.do(ctx, http.MethodGet, path, token, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBlog(ctx context.Context, token string, id int) (*models.Blog, error) {
	var blog models.Blog
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/blogs/%d/", id), token, nil, "", &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// BlogForm is the multipart payload for creating or updating a blog.
type BlogForm struct {
	Title        string
	Content      string
	CategoryName string
	PublishAt    string
	Image        *FilePart
}

func (f BlogForm) fields() map[string]string {
	fields := map[string]string{
		"title":         f.Title,
		"content":       f.Content,
		"category_name": f.CategoryName,
	}
	if f.PublishAt != "" {
		fields["publish_at"] = f.PublishAt
	}
	return fields
}

func (c *Client) CreateBlog(ctx context.Context, token string, form BlogForm) (*models.Blog, error) {
	var blog models.Blog
	if err := c.doMultipart(ctx, http.MethodPost, "/blogs/", token, form.fields(), form.Image, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) UpdateBlog(ctx context.Context, token string, id int, form BlogForm) (*models.Blog, error) {
	var blog models.Blog
	path := fmt.Sprintf("/blogs/%d/", id)
	if err := c.doMultipart(ctx, http.MethodPut, path, token, form.fields(), form.Image, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) DeleteBlog(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blogs/%d/", id), token, nil, "", nil)
}

// LikeBlog reports the like count after the server applied (or rejected)
// the like. Duplicate and self-likes come back as a Forbidden error.
func (c *Client) LikeBlog(ctx context.Context, token string, id int) (int, error) {
	var res struct {
		Likes int `json:"likes"`
	}
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/blogs/%d/like/", id), token, struct{}{}, &res); err != nil {
		return 0, err
	}
	return res.Likes, nil
}

func (c *Client) ShareBlog(ctx context.Context, token string, id int) (int, error) {
	var res struct {
		Shares int `json:"shares"`
	}
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/blogs/%d/share/", id), token, struct{}{}, &res); err != nil {
		return 0, err
	}
	return res.Shares, nil
}
