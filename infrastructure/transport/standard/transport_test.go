package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "marketplace-client-api/core/errors"
)

func TestStream_ReturnsBodyOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte("<marketplace/>"))
	}))
	defer server.Close()

	transport := New(5 * time.Second)
	body, err := transport.Stream(context.Background(), server.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<marketplace/>", string(data))
}

func TestStream_ClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, cerrors.IsNotFound},
		{"unauthorized", http.StatusUnauthorized, cerrors.IsNotAuthorized},
		{"forbidden", http.StatusForbidden, cerrors.IsNotAuthorized},
		{"conflict", http.StatusConflict, cerrors.IsConflict},
		{"service unavailable", http.StatusServiceUnavailable, cerrors.IsServiceUnavailable},
		{"bad gateway", http.StatusBadGateway, cerrors.IsTransientTransport},
		{"internal error", http.StatusInternalServerError, cerrors.IsTransientTransport},
		{"teapot", http.StatusTeapot, cerrors.IsUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			transport := New(5 * time.Second)
			_, err := transport.Stream(context.Background(), server.URL)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected classification: %v", err)
		})
	}
}

func TestStream_ConnectionRefusedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	transport := New(time.Second)
	_, err := transport.Stream(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, cerrors.IsTransientTransport(err), "unexpected classification: %v", err)
}

func TestStream_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := New(5 * time.Second)
	_, err := transport.Stream(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, cerrors.IsCancelled(err), "unexpected classification: %v", err)
}

func TestPost_SendsFormEncodedBody(t *testing.T) {
	var gotContentType string
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
	}))
	defer server.Close()

	transport := New(5 * time.Second)
	form := url.Values{}
	form.Set("status", "FAILED")
	form.Add("node", "123")

	require.NoError(t, transport.Post(context.Background(), server.URL, form))
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "FAILED", gotForm.Get("status"))
	assert.Equal(t, "123", gotForm.Get("node"))
}

func TestRateLimit_DelaysSecondRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	transport := New(5*time.Second, WithRateLimit(20, 1))
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		body, err := transport.Stream(ctx, server.URL)
		require.NoError(t, err)
		body.Close()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
