package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusBadRequest, KindValidation},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindUnknown},
		{http.StatusServiceUnavailable, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			err := classify(tt.status, nil)
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestClassifyDetailMessage(t *testing.T) {
	err := classify(http.StatusForbidden, []byte(`{"detail": "Admin privileges required"}`))
	assert.Equal(t, KindForbidden, err.Kind)
	assert.Equal(t, "Admin privileges required", err.Message)

	err = classify(http.StatusBadRequest, []byte(`{"error": "Invalid UID"}`))
	assert.Equal(t, "Invalid UID", err.Message)
}

func TestClassifyFieldErrors(t *testing.T) {
	body := []byte(`{"title": ["This field is required."], "password": "too short"}`)
	err := classify(http.StatusBadRequest, body)

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []string{"This field is required."}, err.Fields["title"])
	assert.Equal(t, []string{"too short"}, err.Fields["password"])
}

func TestClassifyDuplicateCategoryNameIsConflict(t *testing.T) {
	body := []byte(`{"name": ["category with this name already exists."]}`)
	err := classify(http.StatusBadRequest, body)
	assert.Equal(t, KindConflict, err.Kind)
}

func TestClassifyGarbageBody(t *testing.T) {
	err := classify(http.StatusBadRequest, []byte("<html>not json</html>"))
	assert.Equal(t, KindValidation, err.Kind)
	assert.Empty(t, err.Message)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(&Error{Kind: KindNotFound}))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
