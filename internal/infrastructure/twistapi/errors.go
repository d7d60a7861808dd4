package twistapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// APIError is a non-2xx response from the Twist API.
type APIError struct {
	Status     int
	Code       int
	Message    string
	retryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Is maps HTTP statuses onto the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case twist.ErrNotFound:
		return e.Status == http.StatusNotFound
	case twist.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case twist.ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case twist.ErrInvalidArgument:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// RetryAfter reports whether the request may succeed if repeated: rate
// limiting, timeouts, and 5xx other than 501.
func (e *APIError) RetryAfter() (time.Duration, bool) {
	if e.Status == http.StatusTooManyRequests {
		return e.retryAfter, true
	}
	return 0, isRecoverable(e.Status)
}

func isRecoverable(status int) bool {
	return (status >= http.StatusInternalServerError && status <= 599 && status != http.StatusNotImplemented) ||
		status == http.StatusRequestTimeout
}

type errorBody struct {
	ErrorCode   int    `json:"error_code"`
	ErrorString string `json:"error_string"`
}

func newAPIError(status int, retryAfter string, body []byte) *APIError {
	e := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.ErrorString != "" {
		e.Code, e.Message = eb.ErrorCode, eb.ErrorString
	} else if s := strings.TrimSpace(string(body)); s != "" {
		e.Message = fmt.Sprintf("api error (status %d): %s", status, s)
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs > 0 {
		e.retryAfter = time.Duration(secs) * time.Second
	}
	return e
}

// BatchError reports that a batch request did not complete as a whole.
// Index is the position of the first failed sub-request.
type BatchError struct {
	Index int
	Err   *APIError
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch request %d failed: %s", e.Index, e.Err.Error())
}

func (e *BatchError) Unwrap() error { return e.Err }

// RetryAfter is always false: a failed sub-request is left to the caller.
func (e *BatchError) RetryAfter() (time.Duration, bool) { return 0, false }
