package providers

import (
	"errors"
	"fmt"
)

// ErrUnknownPlatform indicates a registry lookup for an unregistered code.
var ErrUnknownPlatform = errors.New("unknown translation platform")

// ErrPlatformUnavailable indicates the platform's circuit breaker is open
// after repeated failures.
var ErrPlatformUnavailable = errors.New("translation platform unavailable")

// RequestError represents a failed provider call: a non-success HTTP
// status, a response body that could not be parsed, or a timeout.
type RequestError struct {
	Platform   string
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s translate api error: HTTP %d", e.Platform, e.StatusCode)
	}
	return fmt.Sprintf("%s translate api error: %s", e.Platform, e.Reason)
}
