package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studyhall/studyhall/internal/community"
)

// ApiError is the failure envelope for every HTTP response: a success flag
// that is always false plus a caller-facing message. The status code and
// underlying cause are never serialized.
type ApiError struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func newApiError(statusCode int, message string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError() *ApiError {
	return newApiError(http.StatusBadRequest, lower(http.StatusText(http.StatusBadRequest)))
}

func NewNotFoundError() *ApiError {
	return newApiError(http.StatusNotFound, lower(http.StatusText(http.StatusNotFound)))
}

func NewUnauthorizedError() *ApiError {
	return newApiError(http.StatusUnauthorized, lower(http.StatusText(http.StatusUnauthorized)))
}

func NewForbiddenError() *ApiError {
	return newApiError(http.StatusForbidden, lower(http.StatusText(http.StatusForbidden)))
}

func NewInternalServerError(err error) *ApiError {
	e := newApiError(http.StatusInternalServerError, lower(http.StatusText(http.StatusInternalServerError)))
	e.Err = err
	return e
}

// NewServiceError maps the community error taxonomy onto HTTP status codes:
// validation, conflict and capacity failures are 400s, authorization
// failures 403, missing entities 404 and everything else 500.
func NewServiceError(err error) *ApiError {
	var statusCode int
	switch community.ErrKind(err) {
	case community.KindValidation, community.KindConflict, community.KindCapacityExceeded:
		statusCode = http.StatusBadRequest
	case community.KindForbidden:
		statusCode = http.StatusForbidden
	case community.KindNotFound:
		statusCode = http.StatusNotFound
	default:
		return NewInternalServerError(err)
	}

	var e *community.Error
	if errors.As(err, &e) {
		return newApiError(statusCode, e.Message)
	}

	return newApiError(statusCode, lower(http.StatusText(statusCode)))
}
