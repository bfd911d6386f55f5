package walletapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/stretchr/testify/assert"
)

func TestMapStatusToError(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectedError error
	}{
		{
			name:          "BadRequest",
			statusCode:    400,
			expectedError: walletapi.ErrValidationFailed,
		},
		{
			name:          "Unauthorized",
			statusCode:    401,
			expectedError: walletapi.ErrUnauthenticated,
		},
		{
			name:          "Forbidden",
			statusCode:    403,
			expectedError: walletapi.ErrForbidden,
		},
		{
			name:          "NotFound",
			statusCode:    404,
			expectedError: walletapi.ErrNotFound,
		},
		{
			name:          "Conflict",
			statusCode:    409,
			expectedError: walletapi.ErrConflict,
		},
		{
			name:          "UnprocessableEntity",
			statusCode:    422,
			expectedError: walletapi.ErrValidationFailed,
		},
		{
			name:          "InternalServerError",
			statusCode:    500,
			expectedError: walletapi.ErrServerError,
		},
		{
			name:          "BadGateway",
			statusCode:    502,
			expectedError: walletapi.ErrServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := walletapi.MapStatusToError(tc.statusCode)

			assert.Error(t, err, "Expected an error for status code %d", tc.statusCode)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("server message wins", func(t *testing.T) {
		err := &walletapi.APIError{StatusCode: 403, Message: "insufficient permissions", Err: walletapi.ErrForbidden}

		assert.Equal(t, "insufficient permissions", err.Error())
		assert.ErrorIs(t, err, walletapi.ErrForbidden)
	})

	t.Run("falls back to code", func(t *testing.T) {
		err := &walletapi.APIError{StatusCode: 500, Err: walletapi.ErrServerError}

		assert.Equal(t, walletapi.ErrCodeServerError, err.Error())
		assert.False(t, errors.Is(err, context.DeadlineExceeded))
	})
}
