package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// TransportError is a network-level failure or a non-2xx HTTP response.
// Body carries the response body text verbatim when one was received.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed: %s - %s", status, e.Body)
}

// APIError is a structured error carried inside a 2xx response body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return "API error: " + e.Message
	case e.Code != "":
		return "API error: " + e.Code
	}
	return "API error: unknown"
}

// MalformedResponseError is a 2xx response with no extractable content.
type MalformedResponseError struct {
	Body string
}

func (e *MalformedResponseError) Error() string {
	return "no usable content in API response"
}

// RosterExhaustedError means every model in the roster was tried and the
// last one still failed on switchable grounds.
type RosterExhaustedError struct {
	Last error
}

func (e *RosterExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("all models failed, last error: %v", e.Last)
	}
	return "all models failed, check the API configuration and retry later"
}

func (e *RosterExhaustedError) Unwrap() error { return e.Last }

// switchMarkers are error-message signatures indicating the current backend
// is unusable (quota, rate limiting, auth, availability) but another backend
// might succeed. Matched case-insensitively as substrings. The Chinese
// entries cover the Qianfan error vocabulary.
var switchMarkers = []string{
	"quota",
	"limit",
	"exceeded",
	"insufficient",
	"unauthorized",
	"forbidden",
	"model not found",
	"model unavailable",
	"rate limit",
	"429",
	"余额不足",
	"额度",
	"配额",
	"超出限制",
}

// Switchable reports whether an error justifies advancing to the next model
// in the roster rather than failing the call outright.
//
// Timeouts count as transport failures and are switchable so a stalled
// backend cannot pin the whole roster. Caller cancellation is never
// switchable. A well-formed 2xx response with no extractable content is
// switchable too: a backend emitting an unusable shape is as unusable as
// one returning 429.
func Switchable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return true
	}
	var transport *TransportError
	if errors.As(err, &transport) && transport.StatusCode == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range switchMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
