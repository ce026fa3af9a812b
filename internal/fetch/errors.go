package fetch

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// StatusError is a completed HTTP exchange with a non-2xx status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Status)
}

// IsRateLimited reports whether err is an HTTP 429 response.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}

// IsNetwork reports whether err is a transport-level failure (timeout,
// connection refused, DNS) rather than a completed HTTP exchange.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return false
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// Retryable reports whether err is worth another attempt. Rate limiting
// and transport failures are transient; every other HTTP status is
// terminal (404 means the board does not exist, 403 means it never will
// without credentials).
func Retryable(err error) bool {
	return IsRateLimited(err) || IsNetwork(err)
}
