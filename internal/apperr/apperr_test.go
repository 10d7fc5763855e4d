package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err))
	}
}

func TestMessageOf_HidesWrappedError(t *testing.T) {
	err := Internal("Server error", errors.New("pq: connection refused"))

	assert.Equal(t, "Server error", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "connection refused")
	// The wrapped error stays reachable for logging
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageOf_UnknownError(t *testing.T) {
	assert.Equal(t, "Internal server error", MessageOf(errors.New("anything")))
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Community not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}
