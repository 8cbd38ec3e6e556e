package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode_MatchesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("toggle like: %w", NewUnauthenticated("sign in required"))

	assert.True(t, HasCode(err, CodeUnauthenticated))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(nil, CodeUnauthenticated))
}

func TestToClientError_WrapsUnknownErrors(t *testing.T) {
	clientErr := ToClientError(errors.New("boom"))
	require.NotNil(t, clientErr)
	assert.Equal(t, CodeInternal, clientErr.Code)
	assert.Equal(t, http.StatusInternalServerError, clientErr.HTTPStatus)
}

func TestConstructors_CarryErrorStatuses(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{
		{NewUnauthenticated("x"), http.StatusUnauthorized},
		{NewNotFound("card"), http.StatusNotFound},
		{NewValidationFailed("x", nil), http.StatusBadRequest},
		{NewConflict("x"), http.StatusConflict},
		{NewTransient("x", nil), http.StatusBadGateway},
		// A decode failure is recovered before reaching a view; if one ever
		// leaks it must not render as a success.
		{NewDecodeFailure(errors.New("bad payload")), http.StatusInternalServerError},
	} {
		clientErr := ToClientError(tc.err)
		require.NotNil(t, clientErr)
		assert.Equal(t, tc.status, clientErr.HTTPStatus, clientErr.Code)
		assert.GreaterOrEqual(t, clientErr.HTTPStatus, http.StatusBadRequest, clientErr.Code)
	}
}
