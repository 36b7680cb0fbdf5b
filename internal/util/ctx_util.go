package util

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
)

// GetTokenPayloadFromContext 從請求上下文中取出 AuthPayloadMiddleware 設置的 token payload
//
// 返回值:
//   - *token.Payload: 未登入或token無效時為nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	payload, ok := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload)
	if !ok {
		return nil
	}
	return payload
}

func WithTokenPayload(ctx context.Context, payload *token.Payload) context.Context {
	return context.WithValue(ctx, constants.AuthorizationPayloadKey, payload)
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
