package model

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Cart struct {
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// 同一購物車中 (food item, protein, sides集合) 只能有一筆
type CartItem struct {
	CartID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_signature,priority:1" json:"cart_id"`
	Cart               *Cart           `gorm:"foreignKey:CartID" json:"-"`
	FoodItemID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_signature,priority:2" json:"food_item_id"`
	FoodItem           *FoodItem       `gorm:"foreignKey:FoodItemID;constraint:OnDelete:CASCADE" json:"food_item,omitempty"`
	SelectedProtein    Protein         `gorm:"not null;type:varchar(30);default:'';uniqueIndex:idx_cart_item_signature,priority:3" json:"selected_protein"`
	SelectedExtraSides pq.StringArray  `gorm:"type:text[]" json:"selected_extra_sides"`
	SidesKey           string          `gorm:"not null;type:varchar(255);default:'';uniqueIndex:idx_cart_item_signature,priority:4" json:"-"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	CustomerMessage    string          `gorm:"type:varchar(500)" json:"customer_message"`
	UnitPrice          decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"unit_price"`
	BaseModel
}

func (c *CartItem) Sides() []ExtraSide {
	sides := make([]ExtraSide, 0, len(c.SelectedExtraSides))
	for _, s := range c.SelectedExtraSides {
		sides = append(sides, ExtraSide(s))
	}
	return sides
}

// SetSides 同時更新 SidesKey
func (c *CartItem) SetSides(sides []ExtraSide) {
	sides = NormalizeSides(sides)
	arr := make(pq.StringArray, 0, len(sides))
	for _, s := range sides {
		arr = append(arr, string(s))
	}
	c.SelectedExtraSides = arr
	c.SidesKey = SidesKey(sides)
}

func (c *CartItem) TotalPrice() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// NormalizeSides 去除重複, 保留第一次出現的順序
func NormalizeSides(sides []ExtraSide) []ExtraSide {
	seen := make(map[ExtraSide]struct{}, len(sides))
	res := make([]ExtraSide, 0, len(sides))
	for _, s := range sides {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}

// SidesKey 與順序無關的sides比對鍵
func SidesKey(sides []ExtraSide) string {
	sides = NormalizeSides(sides)
	keys := make([]string, 0, len(sides))
	for _, s := range sides {
		keys = append(keys, string(s))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
