package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Pinger 任何可以檢查連線的依賴, ex: postgres, redis
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 讓一般函式滿足 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler checks 的key會出現在回應中
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health GET /health, 任一依賴失敗回503
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	errs := make([]error, len(h.checks))
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}

	var g errgroup.Group
	for i, name := range names {
		checker := h.checks[name]
		g.Go(func() error {
			errs[i] = checker.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	healthy := true
	for i, name := range names {
		if errs[i] != nil {
			healthy = false
			results[name] = "down"
			log.Warn().Err(errs[i]).Str("dependency", name).Msg("health check failed")
			continue
		}
		results[name] = "up"
	}

	if !healthy {
		response.ErrorJSON(w, http.StatusServiceUnavailable, apperr.InternalErrorCode.String(), "service unavailable", results)
		return
	}
	response.SuccessJSON(w, HealthStatus{Status: "ok", Checks: results}, "")
}
