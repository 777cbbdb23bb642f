package httpserver

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Local form checks mirroring what the backend enforces, so obviously
// bad submissions never leave the browser session.

var titlePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .,:;!?'"()-]{2,199}$`)

const (
	maxBlogImageSize      = 5 * 1024 * 1024
	maxProfilePictureSize = 2 * 1024 * 1024
)

func validateBlogForm(title, content, category string) string {
	title = strings.TrimSpace(title)
	if len([]rune(title)) < 3 {
		return "Title must be at least 3 characters long."
	}
	if !titlePattern.MatchString(title) {
		return "Title contains unsupported characters."
	}
	if strings.TrimSpace(category) == "" {
		return "Category is required."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	return ""
}

func imageExtAllowed(filename string, allowed ...string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func validateBlogImage(filename string, size int64) string {
	if !imageExtAllowed(filename, "jpg", "jpeg", "png", "gif") {
		return "Unsupported file type. Only JPG, PNG, GIF allowed."
	}
	if size > maxBlogImageSize {
		return "File too large. Maximum size allowed is 5MB."
	}
	return ""
}

func validateProfilePicture(filename string, size int64) string {
	if !imageExtAllowed(filename, "jpg", "jpeg", "png") {
		return "Only JPG, JPEG, and PNG files are allowed."
	}
	if size > maxProfilePictureSize {
		return "File size should not exceed 2 MB."
	}
	return ""
}
