package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoCode 促銷碼與使用者推薦碼共用
// OwnerUserID 有值代表為某使用者的個人推薦碼
type PromoCode struct {
	Code          string          `gorm:"not null;type:varchar(50);uniqueIndex" json:"code"`
	OwnerUserID   *uuid.UUID      `gorm:"type:uuid;index" json:"owner_user_id"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	DiscountType  DiscountType    `gorm:"not null;type:varchar(20)" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"discount_value"`
	MaxUses       *int            `json:"max_uses"`
	CurrentUses   int             `gorm:"not null;default:0" json:"current_uses"`
	BaseModel
}

func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

func (p *PromoCode) IsExhausted() bool {
	return p.MaxUses != nil && p.CurrentUses >= *p.MaxUses
}

// Discount 折扣金額, 不超過subtotal
func (p *PromoCode) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100))
	default:
		discount = p.DiscountValue
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount
}
