package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// currentUser AuthMiddleware 之後一定有payload, 這裡仍回傳401避免路由設定錯誤時panic
func currentUser(r *http.Request) (*token.Payload, error) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	return payload, nil
}

// uuidParam 解析路徑上的uuid
//
// 錯誤:
//   - BadRequestCode 400: 不是合法的uuid
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.BadRequestCode, "invalid %s", name)
	}
	return id, nil
}

func pagingQuery(r *http.Request) (db.Paging, error) {
	q := r.URL.Query()
	page, err := intQuery(q.Get("page"), "page")
	if err != nil {
		return db.Paging{}, err
	}
	limit, err := intQuery(q.Get("limit"), "limit")
	if err != nil {
		return db.Paging{}, err
	}
	return db.Paging{Page: page, Limit: limit}.Normalize(), nil
}

// intQuery 空字串視為0, 交給 Paging.Normalize 套用預設值
func intQuery(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Newf(apperr.BadRequestCode, "%s must be an integer", name)
	}
	return v, nil
}

func boolQuery(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequestCode, "%s must be true or false", name)
	}
	return &v, nil
}

// timeQuery 接受 RFC3339 或 2006-01-02
// endOfDay 為true時, 只有日期的值會取當天最後一刻
func timeQuery(raw, name string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequestCode, "%s must be RFC3339 or YYYY-MM-DD", name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func badRequest(msg string) error {
	return apperr.New(apperr.BadRequestCode, msg)
}
