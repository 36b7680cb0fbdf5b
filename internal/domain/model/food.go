package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FoodCategory struct {
	Name         string     `gorm:"not null;type:varchar(100);uniqueIndex" json:"name"`
	Slug         string     `gorm:"not null;type:varchar(120);uniqueIndex" json:"slug"`
	Description  string     `gorm:"type:text" json:"description"`
	ImageURL     string     `gorm:"type:varchar(500)" json:"image_url"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	FoodItems    []FoodItem `gorm:"foreignKey:CategoryID" json:"food_items,omitempty"`
	BaseModel
}

type FoodItem struct {
	CategoryID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category             *FoodCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name                 string          `gorm:"not null;type:varchar(150)" json:"name"`
	Slug                 string          `gorm:"not null;type:varchar(170);uniqueIndex" json:"slug"`
	Description          string          `gorm:"type:text" json:"description"`
	BasePrice            decimal.Decimal `gorm:"not null;type:numeric(14,4)" json:"base_price"`
	ImageURL             string          `gorm:"type:varchar(500)" json:"image_url"`
	PreparationTime      int             `gorm:"not null;default:0" json:"preparation_time"`
	IsAvailable          bool            `gorm:"not null;index" json:"is_available"`
	IsFeatured           bool            `gorm:"not null;default:false;index" json:"is_featured"`
	AllowProteinChoice   bool            `gorm:"not null;default:false" json:"allow_protein_choice"`
	AllowExtraSides      bool            `gorm:"not null;default:false" json:"allow_extra_sides"`
	AllowCustomerMessage bool            `gorm:"not null;default:false" json:"allow_customer_message"`
	BaseModel
}
