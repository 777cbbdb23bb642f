package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client is the single outbound surface to the blog API. Every call
// attaches a bearer token when one is given; there is no retry and no
// refresh-token exchange on 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return classify(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, method, path, token, body, "application/json", out)
}

// FilePart is an optional file attached to a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

func (c *Client) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("encode form field %s: %w", k, err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("encode form file: %w", err)
		}
		if _, err := fw.Write(file.Data); err != nil {
			return fmt.Errorf("encode form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}
	return c.do(ctx, method, path, token, &buf, w.FormDataContentType(), out)
}
