package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrEmptyFeedback = errors.New("feedback message is empty")

// HTTPError is a non-2xx answer from the form endpoint.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "http error"
	}
	return fmt.Sprintf("feedback endpoint: status=%d message=%s", e.StatusCode, msg)
}

// Temporary reports whether the request may succeed when retried.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// parseHTTPError understands both {"error": "..."} and
// {"errors": [{"message": "..."}]} bodies.
func parseHTTPError(status int, raw []byte) *HTTPError {
	body := strings.TrimSpace(string(raw))
	herr := &HTTPError{StatusCode: status, Body: body}

	var env struct {
		Error  json.RawMessage `json:"error"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return herr
	}
	var msg string
	if len(env.Error) > 0 && json.Unmarshal(env.Error, &msg) == nil {
		herr.Message = strings.TrimSpace(msg)
	}
	if herr.Message == "" {
		parts := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if m := strings.TrimSpace(e.Message); m != "" {
				parts = append(parts, m)
			}
		}
		herr.Message = strings.Join(parts, "; ")
	}
	return herr
}
