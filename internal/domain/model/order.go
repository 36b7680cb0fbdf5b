package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order struct {
	OrderNumber          string          `gorm:"not null;type:varchar(40);uniqueIndex" json:"order_number"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AddressID            uuid.UUID       `gorm:"type:uuid;not null" json:"address_id"`
	Address              *Address        `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	ContactNumber        string          `gorm:"not null;type:varchar(30)" json:"contact_number"`
	PaymentMethod        PaymentMethod   `gorm:"not null;type:varchar(30)" json:"payment_method"`
	DeliveryTime         *time.Time      `json:"delivery_time"`
	DeliveryInstructions string          `gorm:"type:varchar(500)" json:"delivery_instructions"`
	CustomerInstructions string          `gorm:"type:varchar(500)" json:"customer_instructions"`
	PromoCode            *string         `gorm:"type:varchar(50)" json:"promo_code"`
	Subtotal             decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"subtotal"`
	DeliveryFee          decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"delivery_fee"`
	ServiceFee           decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"service_fee"`
	Tax                  decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"tax"`
	Discount             decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"discount"`
	Total                decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"total"`
	Status               OrderStatus     `gorm:"not null;type:varchar(30);index" json:"status"`
	PaymentStatus        PaymentStatus   `gorm:"not null;type:varchar(30)" json:"payment_status"`
	ConfirmedAt          *time.Time      `json:"confirmed_at"`
	CompletedAt          *time.Time      `json:"completed_at"`
	CancelledAt          *time.Time      `json:"cancelled_at"`
	CancelledBy          *uuid.UUID      `gorm:"type:uuid" json:"cancelled_by"`
	CancellationReason   *string         `gorm:"type:varchar(500)" json:"cancellation_reason"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// OrderItem 下單當下的快照, 不與food item建立外鍵
type OrderItem struct {
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	FoodItemID         uuid.UUID       `gorm:"type:uuid;not null" json:"food_item_id"`
	FoodName           string          `gorm:"not null;type:varchar(150)" json:"food_name"`
	FoodImage          string          `gorm:"type:varchar(500)" json:"food_image"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"unit_price"`
	TotalPrice         decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"total_price"`
	SelectedProtein    Protein         `gorm:"not null;type:varchar(30);default:''" json:"selected_protein"`
	SelectedExtraSides pq.StringArray  `gorm:"type:text[]" json:"selected_extra_sides"`
	CustomerMessage    string          `gorm:"type:varchar(500)" json:"customer_message"`
	BaseModel
}
