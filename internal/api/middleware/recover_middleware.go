package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/rs/zerolog/log"
)

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Error().
					Str("request_id", util.GetRequestID(r.Context())).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("error", fmt.Sprintf("%v", err)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.ErrorJSON(w, http.StatusInternalServerError, apperr.InternalErrorCode.String(), "internal server error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
