package model

import (
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// 不在表內的轉換(包含自己到自己)一律拒絕, COMPLETED/CANCELLED 為終態
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusCompleted, OrderStatusCancelled},
}

// 客戶自行取消只允許這些狀態
var customerCancellable = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
}

func (s OrderStatus) IsValid() bool {
	for _, v := range AllOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo 管理者變更訂單狀態並蓋上對應時間戳
//
// 參數:
//   - next: 目標狀態
//   - actor: 操作者, 取消時記錄於 CancelledBy
//   - reason: 取消原因, 空字串時使用系統預設
//   - now: 時間戳
//
// 錯誤:
//   - InvalidStatusTransitionCode: 轉換不在允許表內
func (o *Order) TransitionTo(next OrderStatus, actor uuid.UUID, reason string, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return apperr.Newf(apperr.InvalidStatusTransitionCode, "cannot transition from %s to %s", o.Status, next)
	}

	o.Status = next
	switch next {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusCompleted:
		o.CompletedAt = &now
	case OrderStatusCancelled:
		if reason == "" {
			reason = constants.AdminCancelReason
		}
		o.CancelledAt = &now
		o.CancelledBy = &actor
		o.CancellationReason = &reason
	}
	return nil
}

// CancelByCustomer 客戶取消, 僅 PENDING/CONFIRMED 可取消且必須提供原因
func (o *Order) CancelByCustomer(userID uuid.UUID, reason string, now time.Time) error {
	if _, ok := customerCancellable[o.Status]; !ok {
		return apperr.Newf(apperr.InvalidOrderStatusCode, "cannot cancel order in %s status", o.Status)
	}
	if reason == "" {
		return apperr.New(apperr.ValidationCode, "cancellation reason is required")
	}
	if len(reason) > constants.MaxCancelReasonLen {
		return apperr.Newf(apperr.ValidationCode, "cancellation reason must be at most %d characters", constants.MaxCancelReasonLen)
	}
	return o.TransitionTo(OrderStatusCancelled, userID, reason, now)
}
