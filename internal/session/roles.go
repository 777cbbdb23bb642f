package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims carries the role markers the backend embeds in access
// tokens. Naming is inconsistent server-side, so all three are kept.
type tokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *tokenClaims) admin() bool {
	return c.IsAdmin || c.IsStaff || c.Role == "admin"
}

// decodeClaims reads token claims without signature verification. The
// client never holds the signing secret; a forged token only changes UX
// hints, the server re-validates every call.
func decodeClaims(token string) (*tokenClaims, error) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// IsAdmin resolves the viewer's role in one fixed order: access-token
// claims first, cached profile blob second. This is a UX hint only,
// never an authorization boundary.
func (s *State) IsAdmin() bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	if claims, err := decodeClaims(s.AccessToken); err == nil && claims.admin() {
		return true
	}
	return s.User.IsAdministrator()
}

// Username prefers the cached profile and falls back to token claims.
func (s *State) Username() string {
	if s == nil {
		return ""
	}
	if s.User.Username != "" {
		return s.User.Username
	}
	if claims, err := decodeClaims(s.AccessToken); err == nil {
		return claims.Username
	}
	return ""
}
