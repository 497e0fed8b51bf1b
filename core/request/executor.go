// ABOUTME: Request executor drives catalog GETs through retry, decode and cancellation
// ABOUTME: Transient transport failures get a fixed attempt budget with no backoff

package request

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"marketplace-client-api/core/decode"
	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
)

// maxAttempts is the total attempt budget per request. Retries happen
// immediately, without backoff.
const maxAttempts = 3

// Executor fetches and decodes catalog documents for one base URL
type Executor struct {
	deps    interfaces.Dependencies
	baseURL string
	meta    *ClientMeta
}

// NewExecutor creates an executor bound to the given base URL. meta may be
// nil when client identification is disabled.
func NewExecutor(deps interfaces.Dependencies, baseURL string, meta *ClientMeta) *Executor {
	return &Executor{
		deps:    deps,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		meta:    meta,
	}
}

// BaseURL returns the configured catalog base URL
func (e *Executor) BaseURL() string {
	return e.baseURL
}

// BuildURI joins the base URL with a relative path and, when requested,
// appends the client identification parameters.
func (e *Executor) BuildURI(relative string, withMeta bool) (string, error) {
	if e.baseURL == "" {
		return "", errors.New("marketplace base URL is not configured")
	}
	uri := e.baseURL
	if relative != "" {
		uri = uri + "/" + strings.TrimPrefix(relative, "/")
	}
	if withMeta {
		uri = e.meta.AppendTo(uri)
	}
	return uri, nil
}

// Execute fetches the document at base plus relative and decodes it.
// A missing base URL is a programming error and is never retried.
func (e *Executor) Execute(ctx context.Context, relative string, withMeta bool) (*domain.Marketplace, error) {
	uri, err := e.BuildURI(relative, withMeta)
	if err != nil {
		return nil, err
	}
	return e.ExecuteAbsolute(ctx, uri)
}

// ExecuteURL fetches and decodes an absolute URI, for operations that
// address entities by their browser-facing URL. Client identification is
// appended the same way as for relative requests.
func (e *Executor) ExecuteURL(ctx context.Context, uri string, withMeta bool) (*domain.Marketplace, error) {
	if withMeta {
		uri = e.meta.AppendTo(uri)
	}
	return e.ExecuteAbsolute(ctx, uri)
}

// ExecuteAbsolute fetches and decodes an absolute URI as given.
func (e *Executor) ExecuteAbsolute(ctx context.Context, uri string) (*domain.Marketplace, error) {
	if e.deps.Transport == nil {
		return nil, errors.New("transport is not configured")
	}

	var lastTransient error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, &cerrors.CancelledError{URI: uri}
		}

		body, err := e.deps.Transport.Stream(ctx, uri)
		if err != nil {
			if cerrors.IsCancelled(err) {
				return nil, err
			}
			if cerrors.IsTransientTransport(err) {
				lastTransient = err
				continue
			}
			return nil, err
		}

		mp, derr := decode.Unmarshal(body, uri)
		_ = body.Close()
		if derr != nil {
			// Malformed content is a content problem, not a network
			// problem; retrying the same bytes cannot help.
			return nil, derr
		}
		return mp, nil
	}

	return nil, &cerrors.ConnectionProblemError{URI: uri, Cause: lastTransient}
}

// Post submits a form to base plus relative. The response body is
// discarded; classification of the outcome is the transport's job.
func (e *Executor) Post(ctx context.Context, relative string, form url.Values) error {
	uri, err := e.BuildURI(relative, false)
	if err != nil {
		return err
	}
	return e.deps.Transport.Post(ctx, uri, form)
}

// Get performs a fire-and-forget GET against an absolute URI, draining the
// response. Used by the success-ping report.
func (e *Executor) Get(ctx context.Context, uri string) error {
	body, err := e.deps.Transport.Stream(ctx, uri)
	if err != nil {
		return err
	}
	return body.Close()
}
