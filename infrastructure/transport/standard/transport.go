// ABOUTME: Standard HTTP transport with outcome classification into the error taxonomy
// ABOUTME: Retry policy lives in the request executor; this layer only classifies

package standard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	cerrors "marketplace-client-api/core/errors"
)

const userAgent = "MarketplaceClient/1.0"

// Transport implements the core Transport interface over http.Client. Every
// failure is classified into the core/errors taxonomy before it leaves this
// package; the request executor bases its retry decisions solely on those
// types.
type Transport struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Transport
type Option func(*Transport)

// WithRateLimit throttles outbound requests to the given sustained rate and
// burst. Zero or negative disables the limiter.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(t *Transport) {
		if perSecond > 0 {
			t.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithUserAgent overrides the default User-Agent header
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// New creates a transport with the specified request timeout
func New(timeout time.Duration, opts ...Option) *Transport {
	t := &Transport{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stream performs a GET against uri and returns the response body. The
// caller closes the stream.
func (t *Transport) Stream(ctx context.Context, uri string) (io.ReadCloser, error) {
	resp, err := t.do(ctx, http.MethodGet, uri, "", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Post performs a form-encoded POST against uri, discarding the response
// body.
func (t *Transport) Post(ctx context.Context, uri string, form url.Values) error {
	resp, err := t.do(ctx, http.MethodPost, uri,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (t *Transport) do(ctx context.Context, method, uri, contentType string, body io.Reader) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &cerrors.CancelledError{URI: uri}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, &cerrors.UnexpectedResponseError{URI: uri, Message: err.Error()}
	}
	req.Header.Set("User-Agent", t.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &cerrors.CancelledError{URI: uri}
		}
		return nil, &cerrors.TransientTransportError{URI: uri, Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	resp.Body.Close()
	return nil, classifyStatus(uri, resp.StatusCode, resp.Status)
}

// classifyStatus maps non-2xx responses onto the error taxonomy. A 503 is
// terminal for the current request; other 5xx responses are transient.
func classifyStatus(uri string, code int, status string) error {
	switch code {
	case http.StatusNotFound:
		return &cerrors.NotFoundError{Resource: "document", URI: uri}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &cerrors.NotAuthorizedError{URI: uri, Message: status}
	case http.StatusConflict:
		return &cerrors.ConflictError{Key: uri, Message: status}
	case http.StatusServiceUnavailable:
		return &cerrors.ServiceUnavailableError{URI: uri, Message: status}
	}
	if code >= 500 {
		return &cerrors.TransientTransportError{
			URI:   uri,
			Cause: errors.New(status),
		}
	}
	return &cerrors.UnexpectedResponseError{URI: uri, Message: status}
}
