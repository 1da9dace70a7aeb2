package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	custom := "PROPERTY_INVALID"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", NewUnauthorizedError("x", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("x", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("x", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request custom code", NewBadRequestError("x", false, &custom, nil, nil), http.StatusBadRequest, custom},
		{"not found", NewNotFoundError("x", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"credentials", NewInvalidCredentialsError(), http.StatusUnauthorized, CodeInvalidCredentials},
		{"token", NewInvalidTokenError("expired"), http.StatusUnauthorized, CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestHTTPError_IsAndWithMessage(t *testing.T) {
	base := NewNotFoundError("Property not found", true, nil)
	wrapped := fmt.Errorf("search: %w", base)

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	changed := base.WithMessage("Listing not found")
	assert.Equal(t, "Listing not found", changed.Message)
	assert.Equal(t, "Property not found", base.Message)
	assert.Equal(t, base.Status, changed.Status)
}

func TestNewInvalidTokenError_RedirectsToLogin(t *testing.T) {
	err := NewInvalidTokenError("token expired")
	if assert.NotNil(t, err.Action) {
		assert.Equal(t, ActionTypeRedirect, err.Action.Type)
		assert.Equal(t, "/login", err.Action.Value)
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "SERVICE_UNAVAILABLE", MakeUpperCaseWithUnderscores("Service Unavailable"))
}
