package httpserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBlogForm(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		category string
		want     string
	}{
		{"valid", "My First Post", "Hello.", "Travel", ""},
		{"two char title", "ab", "Hello.", "Travel", "Title must be at least 3 characters long."},
		{"title padded with spaces", "  a  ", "Hello.", "Travel", "Title must be at least 3 characters long."},
		{"leading punctuation", "!bang", "Hello.", "Travel", "Title contains unsupported characters."},
		{"missing category", "My First Post", "Hello.", "", "Category is required."},
		{"missing content", "My First Post", "", "Travel", "Content is required."},
		{"unicode title", "日記 その一", "Hello.", "Travel", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateBlogForm(tt.title, tt.content, tt.category))
		})
	}
}

func TestValidateBlogImage(t *testing.T) {
	assert.Empty(t, validateBlogImage("photo.JPG", 1024))
	assert.Empty(t, validateBlogImage("anim.gif", maxBlogImageSize))
	assert.Equal(t, "Unsupported file type. Only JPG, PNG, GIF allowed.",
		validateBlogImage("doc.pdf", 1024))
	assert.Equal(t, "File too large. Maximum size allowed is 5MB.",
		validateBlogImage("photo.png", maxBlogImageSize+1))
}

func TestValidateProfilePicture(t *testing.T) {
	assert.Empty(t, validateProfilePicture("me.png", 1024))
	assert.Equal(t, "Only JPG, JPEG, and PNG files are allowed.",
		validateProfilePicture("me.gif", 1024))
	assert.Equal(t, "File size should not exceed 2 MB.",
		validateProfilePicture("me.jpg", maxProfilePictureSize+1))
}

func TestTitlePatternLength(t *testing.T) {
	assert.True(t, titlePattern.MatchString("abc"))
	assert.True(t, titlePattern.MatchString("a"+strings.Repeat("b", 199)))
	assert.False(t, titlePattern.MatchString("a"+strings.Repeat("b", 200)))
}
