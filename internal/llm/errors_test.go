package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o deadline reached" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestSwitchable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("qianfan request: %w", context.Canceled), false},
		{"net timeout", fakeTimeoutError{}, true},
		{"malformed response", &MalformedResponseError{Body: "{}"}, true},
		{"http 429", &TransportError{StatusCode: 429, Status: "429 Too Many Requests"}, true},
		{"http 500 plain", &TransportError{StatusCode: 500, Status: "500 Internal Server Error", Body: "oops"}, false},
		{"http 500 quota body", &TransportError{StatusCode: 500, Body: "daily quota reached"}, true},
		{"quota marker", errors.New("Quota exceeded for this key"), true},
		{"rate limit marker", errors.New("rate limit hit, slow down"), true},
		{"unauthorized marker", errors.New("401 Unauthorized"), true},
		{"model gone", errors.New("model not found: ernie-9k"), true},
		{"chinese balance", errors.New("余额不足，请充值"), true},
		{"chinese quota", errors.New("已超出限制"), true},
		{"api error with marker", &APIError{Code: "insufficient_balance", Message: "余额不足"}, true},
		{"api error plain", &APIError{Code: "invalid_request", Message: "bad input"}, false},
		{"plain failure", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Switchable(tt.err))
		})
	}
}

func TestRosterExhaustedErrorUnwrap(t *testing.T) {
	last := &TransportError{StatusCode: 429, Status: "429 Too Many Requests"}
	err := &RosterExhaustedError{Last: last}

	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
	assert.Contains(t, err.Error(), "all models failed")
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{StatusCode: 503, Status: "503 Service Unavailable", Body: "down"}
	assert.Equal(t, "API request failed: 503 Service Unavailable - down", err.Error())

	noStatus := &TransportError{StatusCode: 503, Body: "down"}
	assert.Equal(t, "API request failed: 503 - down", noStatus.Error())
}
