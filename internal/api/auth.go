package api

import (
	"context"
	"fmt"
	"net/http"

	"blogfront/internal/models"
)

// LoginResponse mirrors the token-pair payload of POST /auth/login/.
type LoginResponse struct {
	Access  string             `json:"access"`
	Refresh string             `json:"refresh"`
	User    models.UserProfile `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := map[string]string{"username": username, "password": password}
	var res LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login/", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, username, email, password, password2 string) error {
	req := map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"password2": password2,
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/register/", "", req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password/", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPasswordConfirm(ctx context.Context, uid, token, newPassword string) error {
	path := fmt.Sprintf("/auth/reset-password-confirm/%s/%s/", uid, token)
	return c.doJSON(ctx, http.MethodPost, path, "", map[string]string{"new_password": newPassword}, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me/", token, nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UploadProfilePicture(ctx context.Context, token, filename string, data []byte) error {
	file := &FilePart{Field: "profile_picture", Filename: filename, Data: data}
	return c.doMultipart(ctx, http.MethodPut, "/auth/upload-profile-picture/", token, nil, file, nil)
}
