// Package interfaces defines the core interfaces used throughout the client.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"io"
	"net/url"
)

// Transport performs the actual network I/O. Implementations own connection
// pooling, TLS and timeouts; callers own retry policy.
//
// Errors returned by a Transport must be drawn from the core/errors
// taxonomy: the request executor retries only TransientTransportError and
// converts context cancellation observed here into a CancelledError.
type Transport interface {
	// Stream performs a GET against uri and returns the response body.
	// The caller is responsible for closing the stream.
	Stream(ctx context.Context, uri string) (io.ReadCloser, error)

	// Post performs a form-encoded POST against uri. The response body is
	// discarded; only the classified outcome is reported.
	Post(ctx context.Context, uri string, form url.Values) error
}
