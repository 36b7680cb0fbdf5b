package middleware

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
)

// 驗證token 但若token有任何錯誤都不會中斷, 這裡僅做解析token payload, 若payload有錯誤則不會設置context
func AuthPayloadMiddleware(tokenMaker token.Maker) func(http.Handler) http.Handler {
	if tokenMaker == nil {
		panic("AuthPayloadMiddleware: tokenMaker cannot be nil")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := checkAuthPayload(tokenMaker, r)
			if ok {
				next.ServeHTTP(w, r.WithContext(util.WithTokenPayload(r.Context(), payload)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkAuthPayload(tokenMaker token.Maker, r *http.Request) (*token.Payload, bool) {
	authorizationHeader := r.Header.Get(string(constants.AuthorizationHeaderKey))
	if len(authorizationHeader) == 0 {
		return nil, false
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) < 2 {
		return nil, false
	}

	if strings.ToLower(fields[0]) != string(constants.AuthorizationTypeBearer) {
		return nil, false
	}

	// refresh token 不能拿來存取api
	payload, err := tokenMaker.VerifyToken(fields[1], token.AccessToken)
	if err != nil {
		return nil, false
	}
	return payload, true
}
