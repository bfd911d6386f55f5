package service

import (
	"errors"
)

var (
	ErrInvalidAmount       = errors.New("amount must be at least 1")
	ErrFlowInProgress      = errors.New("a payment is already in progress")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrInvalidOrder        = errors.New("wallet service returned an invalid order")
	ErrOrderAmountMismatch = errors.New("order amount does not match the requested amount")
	ErrInvalidBalance      = errors.New("wallet service returned an invalid balance")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the code of the outermost service error in err, or "".
func ErrorCode(err error) string {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}

	return ""
}

func ensureCode(err error, code string) error {
	if ErrorCode(err) != "" {
		return err
	}

	return NewServiceError(code, err)
}
