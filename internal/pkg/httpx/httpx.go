package httpx

import (
	"context"
	"errors"
	"net"
)

// HTTPStatusCoder is implemented by errors that carry an upstream status code.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// IsServerStatus reports whether code is an upstream-side failure (5xx or
// the throttling/timeout statuses 408/429).
func IsServerStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsTimeout reports whether err looks like a timeout, either a deadline on
// the request context or a network-level timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// StatusOf extracts the upstream status code from err, or 0 when it carries none.
func StatusOf(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}
