package dto

import (
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/shopspring/decimal"
)

type PromoCodeRequest struct {
	Code          string             `json:"code" validate:"required,min=3,max=50"`
	DiscountType  model.DiscountType `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	MaxUses       *int               `json:"max_uses" validate:"omitnil,min=1"`
	ExpiresAt     *time.Time         `json:"expires_at"`
	IsActive      *bool              `json:"is_active"`
}

func (r PromoCodeRequest) Params() service.PromoCodeParams {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.PromoCodeParams{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MaxUses:       r.MaxUses,
		ExpiresAt:     r.ExpiresAt,
		IsActive:      active,
	}
}

// UpdatePromoCodeRequest clear_expiry/clear_max_uses 用來移除期限與次數上限
type UpdatePromoCodeRequest struct {
	IsActive      *bool            `json:"is_active"`
	ExpiresAt     *time.Time       `json:"expires_at"`
	ClearExpiry   bool             `json:"clear_expiry"`
	MaxUses       *int             `json:"max_uses" validate:"omitnil,min=1"`
	ClearMaxUses  bool             `json:"clear_max_uses"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
}

func (r UpdatePromoCodeRequest) Params() service.UpdatePromoCodeParams {
	return service.UpdatePromoCodeParams{
		IsActive:      r.IsActive,
		ExpiresAt:     r.ExpiresAt,
		ClearExpiry:   r.ClearExpiry,
		MaxUses:       r.MaxUses,
		ClearMaxUses:  r.ClearMaxUses,
		DiscountValue: r.DiscountValue,
	}
}
