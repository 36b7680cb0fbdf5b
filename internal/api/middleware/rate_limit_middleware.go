package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/rs/zerolog/log"
)

// Limiter 由 ratelimit.RsTokenBucket 實作
type Limiter interface {
	Allow(ctx context.Context, key string, cfg ratelimit.LimiterConfig) (ratelimit.Result, error)
}

// 限流分類, 同一個ip在不同分類各自計數
const (
	RateLimitPublic        = "public"
	RateLimitAuth          = "auth"
	RateLimitAuthenticated = "authenticated"
)

// NewRateLimitMiddleware 以 client ip + 分類作為bucket key
// redis 錯誤時放行, 避免redis故障導致整個api無法使用
func NewRateLimitMiddleware(limiter Limiter, class string, cfg ratelimit.LimiterConfig) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("NewRateLimitMiddleware: limiter cannot be nil")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := class + ":" + clientIP(r)
			result, err := limiter.Allow(r.Context(), key, cfg)
			if err != nil {
				log.Warn().Err(err).
					Str("request_id", util.GetRequestID(r.Context())).
					Str("key", key).
					Msg("rate limiter unavailable, request allowed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				response.Error(w, r, apperr.New(apperr.TooManyRequestsCode, "too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP chi middleware.RealIP 已經把 X-Forwarded-For 寫回 RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
