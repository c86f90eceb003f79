package goals

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable machine-readable kind of a business error.
type Code string

const (
	CodeNotFound               Code = "GOAL_NOT_FOUND"
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodeGoalPaused             Code = "GOAL_PAUSED"
	CodeNotStarted             Code = "GOAL_NOT_STARTED"
	CodePastDateRejected       Code = "PAST_DATE_REJECTED"
	CodeEffortExceedsRemaining Code = "EFFORT_EXCEEDS_REMAINING"
)

// Error is a business-rule failure detected before any mutation was
// persisted. Anything else coming out of the service is an internal
// failure and keeps its original type.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the error kind to the response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a business Error, when it is one.
func AsError(err error) (*Error, bool) {
	var bizErr *Error
	ok := errors.As(err, &bizErr)
	return bizErr, ok
}
