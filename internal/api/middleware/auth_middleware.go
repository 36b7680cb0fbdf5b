package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
)

// 驗證ctx是否有token payload, 需放在 AuthPayloadMiddleware 之後
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			response.Error(w, r, apperr.New(apperr.UnauthenticatedCode, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 需放在 AuthMiddleware 之後
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := util.GetTokenPayloadFromContext(r.Context())
		if payload == nil {
			response.Error(w, r, apperr.New(apperr.UnauthenticatedCode, "authentication required"))
			return
		}
		if !payload.IsAdmin() {
			response.Error(w, r, apperr.New(apperr.ForbiddenCode, "admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
