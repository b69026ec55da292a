package api

import (
	"errors"
	"net/http"

	"github.com/arktech/studydao/model/verification"
)

// StatusError provides custom error with http status.
type StatusError interface {
	error                // this is the actual error that occurred
	Status() int         // the HTTP status code to return
	UserMessage() string // hide the error message from the user
}

// NewBadRequestError creates a new bad request rest error.
func NewBadRequestError(err error) *Error {
	return &Error{
		status:      http.StatusBadRequest,
		userMessage: err.Error(),
		err:         err,
	}
}

// NewNotFoundError creates a new not found rest error.
func NewNotFoundError(msg string, err error) *Error {
	return &Error{
		status:      http.StatusNotFound,
		userMessage: msg,
		err:         err,
	}
}

// Error is implementation of status error.
type Error struct {
	status      int
	userMessage string
	err         error
}

func (e *Error) UserMessage() string {
	return e.userMessage
}

// Status returns error http status code.
func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// statusOf maps a verification error to the HTTP status reported to clients.
// The message of the underlying error is always passed through.
func statusOf(err error) int {
	var statusErr StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Status()
	case verification.IsInvalidAddressError(err),
		verification.IsInvalidIndexError(err),
		verification.IsUnsupportedOperationError(err):
		return http.StatusBadRequest
	case verification.IsIneligibleError(err),
		verification.IsSubmissionRejectedError(err),
		errors.Is(err, verification.ErrAttemptInProgress):
		return http.StatusConflict
	case verification.IsKernelExecutionError(err),
		verification.IsSubmissionFailedError(err):
		return http.StatusBadGateway
	case verification.IsSubmissionTimeoutError(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
