package dto

import (
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	AddressID            uuid.UUID           `json:"address_id" validate:"required"`
	ContactNumber        string              `json:"contact_number" validate:"required,min=7,max=20"`
	PaymentMethod        model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH_ON_DELIVERY CARD BANK_TRANSFER WALLET"`
	PromoCode            string              `json:"promo_code" validate:"omitempty,max=50"`
	DeliveryTime         *time.Time          `json:"delivery_time"`
	DeliveryInstructions string              `json:"delivery_instructions" validate:"max=500"`
	CustomerInstructions string              `json:"customer_instructions" validate:"max=500"`
}

func (r CreateOrderRequest) Params() service.CreateOrderParams {
	return service.CreateOrderParams{
		AddressID:            r.AddressID,
		ContactNumber:        r.ContactNumber,
		PaymentMethod:        r.PaymentMethod,
		PromoCode:            r.PromoCode,
		DeliveryTime:         r.DeliveryTime,
		DeliveryInstructions: r.DeliveryInstructions,
		CustomerInstructions: r.CustomerInstructions,
	}
}

// CancelOrderRequest 客戶取消必須提供原因
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// UpdateOrderStatusRequest status 的合法性由service判斷: 未知狀態回傳 Validation, 不允許的轉換回傳 InvalidStatusTransition
type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required"`
	Reason string            `json:"reason" validate:"max=500"`
}
