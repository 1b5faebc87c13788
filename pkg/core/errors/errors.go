package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Standard API-related errors
var (
	ErrUnauthorized       = errors.New("opensubtitles: unauthorized (invalid API key or token)")
	ErrForbidden          = errors.New("opensubtitles: forbidden (insufficient permissions or quota exceeded)")
	ErrNotFound           = errors.New("opensubtitles: resource not found")
	ErrNotAcceptable      = errors.New("opensubtitles: download quota reached")
	ErrRateLimited        = errors.New("opensubtitles: rate limit exceeded")
	ErrServiceUnavailable = errors.New("opensubtitles: service unavailable or internal server error")

	// Client-side errors
	ErrNotLoggedIn   = errors.New("client: not logged in")
	ErrInvalidJSON   = errors.New("invalid JSON in response body")
	ErrFileTooSmall  = errors.New("fileops: file too small for movie hash")
	ErrNoSessionData = errors.New("session: no stored session")
)

// HTTPError is returned for any response outside the 2xx range.
// Its message only ever mentions the status; the body is kept for callers that want it.
type HTTPError struct {
	StatusCode int
	Body       json.RawMessage
}

// NewHTTPError builds an HTTPError, keeping body only when it is valid JSON.
func NewHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status}
	if len(body) > 0 && gjson.ValidBytes(body) {
		e.Body = append(json.RawMessage(nil), body...)
	}
	return e
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

// Message returns the API's own explanation, looked up in the usual
// "message" / "errors" fields of the error body.
func (e *HTTPError) Message() string {
	if len(e.Body) == 0 {
		return ""
	}
	if m := gjson.GetBytes(e.Body, "message"); m.Exists() {
		return m.String()
	}
	if m := gjson.GetBytes(e.Body, "errors.0"); m.Exists() {
		return m.String()
	}
	return ""
}

// Is lets errors.Is match an HTTPError against the status sentinels above.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrNotAcceptable:
		return e.StatusCode == http.StatusNotAcceptable
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServiceUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
