package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	result ratelimit.Result
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, cfg ratelimit.LimiterConfig) (ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequestIdMiddleware(t *testing.T) {
	var seen string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = util.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-123", seen)
}

func TestRateLimitMiddleware(t *testing.T) {
	testCases := []struct {
		name   string
		result ratelimit.Result
		err    error
		status int
	}{
		{name: "allowed", result: ratelimit.Result{Allowed: true, Remaining: 4}, status: http.StatusNoContent},
		{name: "denied", result: ratelimit.Result{Allowed: false}, status: http.StatusTooManyRequests},
		{name: "redis down fails open", err: errors.New("dial tcp: connection refused"), status: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limiter := &stubLimiter{result: tc.result, err: tc.err}
			h := NewRateLimitMiddleware(limiter, RateLimitPublic, ratelimit.PerMinute(5))(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.7:5555"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			require.Len(t, limiter.keys, 1)
			assert.Equal(t, "public:10.0.0.7", limiter.keys[0])
		})
	}
}

func TestStatusRecoderDefault(t *testing.T) {
	rec := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	assert.Equal(t, http.StatusOK, rec.Status())
	rec.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, rec.Status())
}
