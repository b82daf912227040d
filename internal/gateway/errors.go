package gateway

import (
	"errors"
	"fmt"
)

// ErrUnreachable wraps transport-level failures: the request never produced
// an HTTP response (offline, DNS, refused connection). Distinct from a
// server-rejected request so callers can word the notification differently.
var ErrUnreachable = errors.New("gateway unreachable")

// ErrNotFound is returned when an id cannot be resolved against the events
// collection.
var ErrNotFound = errors.New("event not found")

// StatusError is a non-2xx response from the gateway. The request reached
// the server and was rejected.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.Code, e.Status)
}

// IsServerRejected reports whether err is a non-2xx gateway response.
func IsServerRejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsUnreachable reports whether err is a transport failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
