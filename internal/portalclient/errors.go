package portalclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure for callers that branch on the
// outcome rather than the exact code.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindServer       ErrorKind = "server"
)

// APIError is the typed failure every client call returns. Code and
// Details come from the server error envelope when one was decoded.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	Details    interface{}
	Err        error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (%s %d %s): %s", e.Kind, e.StatusCode, e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api error (%s %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "request failed", Err: err}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool     { return IsKind(err, KindConflict) }
