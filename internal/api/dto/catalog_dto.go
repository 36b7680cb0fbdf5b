package dto

import (
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=500"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

// Params is_active 未帶時預設啟用
func (r CategoryRequest) Params() service.CategoryParams {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CategoryParams{
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		DisplayOrder: r.DisplayOrder,
		IsActive:     active,
	}
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description  *string `json:"description" validate:"omitnil,max=1000"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url,max=500"`
	DisplayOrder *int    `json:"display_order" validate:"omitnil,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

func (r UpdateCategoryRequest) Params() service.UpdateCategoryParams {
	return service.UpdateCategoryParams{
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

// FoodItemRequest 價格以字串或數字傳入皆可, 由 decimal 解析; 負數由service拒絕
type FoodItemRequest struct {
	CategoryID           uuid.UUID       `json:"category_id" validate:"required"`
	Name                 string          `json:"name" validate:"required,max=150"`
	Description          string          `json:"description" validate:"max=2000"`
	BasePrice            decimal.Decimal `json:"base_price"`
	ImageURL             string          `json:"image_url" validate:"omitempty,url,max=500"`
	PreparationTime      int             `json:"preparation_time" validate:"gte=0,lte=600"`
	IsAvailable          *bool           `json:"is_available"`
	IsFeatured           bool            `json:"is_featured"`
	AllowProteinChoice   bool            `json:"allow_protein_choice"`
	AllowExtraSides      bool            `json:"allow_extra_sides"`
	AllowCustomerMessage bool            `json:"allow_customer_message"`
}

func (r FoodItemRequest) Params() service.FoodItemParams {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return service.FoodItemParams{
		CategoryID:           r.CategoryID,
		Name:                 r.Name,
		Description:          r.Description,
		BasePrice:            r.BasePrice,
		ImageURL:             r.ImageURL,
		PreparationTime:      r.PreparationTime,
		IsAvailable:          available,
		IsFeatured:           r.IsFeatured,
		AllowProteinChoice:   r.AllowProteinChoice,
		AllowExtraSides:      r.AllowExtraSides,
		AllowCustomerMessage: r.AllowCustomerMessage,
	}
}

type UpdateFoodItemRequest struct {
	CategoryID           *uuid.UUID       `json:"category_id"`
	Name                 *string          `json:"name" validate:"omitnil,min=1,max=150"`
	Description          *string          `json:"description" validate:"omitnil,max=2000"`
	BasePrice            *decimal.Decimal `json:"base_price"`
	ImageURL             *string          `json:"image_url" validate:"omitempty,url,max=500"`
	PreparationTime      *int             `json:"preparation_time" validate:"omitnil,gte=0,lte=600"`
	IsAvailable          *bool            `json:"is_available"`
	IsFeatured           *bool            `json:"is_featured"`
	AllowProteinChoice   *bool            `json:"allow_protein_choice"`
	AllowExtraSides      *bool            `json:"allow_extra_sides"`
	AllowCustomerMessage *bool            `json:"allow_customer_message"`
}

func (r UpdateFoodItemRequest) Params() service.UpdateFoodItemParams {
	return service.UpdateFoodItemParams{
		CategoryID:           r.CategoryID,
		Name:                 r.Name,
		Description:          r.Description,
		BasePrice:            r.BasePrice,
		ImageURL:             r.ImageURL,
		PreparationTime:      r.PreparationTime,
		IsAvailable:          r.IsAvailable,
		IsFeatured:           r.IsFeatured,
		AllowProteinChoice:   r.AllowProteinChoice,
		AllowExtraSides:      r.AllowExtraSides,
		AllowCustomerMessage: r.AllowCustomerMessage,
	}
}
