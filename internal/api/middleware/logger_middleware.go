package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Status 沒有呼叫過WriteHeader時為200
func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func getUserID(r *http.Request) uuid.UUID {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return uuid.Nil
	}
	return payload.UserID
}

// 記錄request 請求, logger為nil時使用全域logger
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = &log.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}
			next.ServeHTTP(recoder, r)

			status := recoder.Status()
			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			} else if status >= http.StatusBadRequest {
				event = logger.Warn()
			}

			event.
				Str("request_id", util.GetRequestID(r.Context())).
				Str("user_id", getUserID(r).String()).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}
