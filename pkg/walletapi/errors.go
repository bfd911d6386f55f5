package walletapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
)

const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeServerError      = "SERVER_ERROR"
)

var (
	ErrValidationFailed = errors.New(ErrCodeValidationFailed)
	ErrUnauthenticated  = errors.New(ErrCodeUnauthenticated)
	ErrForbidden        = errors.New(ErrCodeForbidden)
	ErrNotFound         = errors.New(ErrCodeNotFound)
	ErrConflict         = errors.New(ErrCodeConflict)
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrServerError      = errors.New(ErrCodeServerError)
)

const maxErrorBody = 64 << 10

var statusErrorMap = map[int]error{
	http.StatusBadRequest:          ErrValidationFailed,
	http.StatusUnprocessableEntity: ErrValidationFailed,
	http.StatusUnauthorized:        ErrUnauthenticated,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

// APIError is a non-2xx answer. Error returns the server's message when it sent one.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(data, &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Err:        MapStatusToError(resp.StatusCode),
	}
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	return err
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return errors.Is(apiErr.Err, ErrServerError)
	}

	return !errors.Is(err, context.Canceled)
}
