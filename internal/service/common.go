package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/google/uuid"
)

// 寄信與事件發送的時間上限, 不受request取消影響
const notifyTimeout = 5 * time.Second

type clock func() time.Time

// dbError 將repository錯誤轉為AppError
//   - gorm.ErrRecordNotFound => NotFoundCode
//   - unique violation => ConflictCode
//   - 其他 => InternalErrorCode
func dbError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if db.IsNotFound(err) {
		return apperr.New(apperr.NotFoundCode, notFoundMsg)
	}
	if db.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.ConflictCode, "resource already exists", err)
	}
	return apperr.Internal(err)
}

// notifyContext 脫離request生命週期, commit後的通知不因client斷線而中斷
func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
}

// parseIDOrSlug 可解析為uuid時以id查詢, 否則視為slug
func parseIDOrSlug(idOrSlug string) (uuid.UUID, bool) {
	id, err := uuid.Parse(idOrSlug)
	return id, err == nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// PagedResult 分頁查詢結果
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func newPagedResult[T any](items []T, total int64, paging db.Paging) *PagedResult[T] {
	paging = paging.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(paging.Limit) - 1) / int64(paging.Limit))
	return &PagedResult[T]{
		Items:      items,
		Total:      total,
		Page:       paging.Page,
		Limit:      paging.Limit,
		TotalPages: pages,
	}
}
