package dto

import (
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	FoodItemID      uuid.UUID         `json:"food_item_id" validate:"required"`
	Quantity        int               `json:"quantity" validate:"required,min=1"`
	Protein         model.Protein     `json:"selected_protein" validate:"omitempty,oneof=FRIED_CHICKEN GRILLED_FISH BEEF"`
	Sides           []model.ExtraSide `json:"selected_extra_sides" validate:"omitempty,dive,oneof=FRIED_PLANTAIN COLESLAW EXTRA_PEPPER_SAUCE"`
	CustomerMessage string            `json:"customer_message" validate:"max=500"`
}

func (r AddCartItemRequest) Params() service.AddCartItemParams {
	return service.AddCartItemParams{
		FoodItemID:      r.FoodItemID,
		Quantity:        r.Quantity,
		Protein:         r.Protein,
		Sides:           r.Sides,
		CustomerMessage: r.CustomerMessage,
	}
}

// UpdateCartItemRequest selected_protein 傳空字串代表取消protein
type UpdateCartItemRequest struct {
	Quantity        *int               `json:"quantity" validate:"omitnil,min=1"`
	Protein         *model.Protein     `json:"selected_protein" validate:"omitempty,oneof=FRIED_CHICKEN GRILLED_FISH BEEF"`
	Sides           *[]model.ExtraSide `json:"selected_extra_sides" validate:"omitnil,dive,oneof=FRIED_PLANTAIN COLESLAW EXTRA_PEPPER_SAUCE"`
	CustomerMessage *string            `json:"customer_message" validate:"omitnil,max=500"`
}

func (r UpdateCartItemRequest) Params() service.UpdateCartItemParams {
	return service.UpdateCartItemParams{
		Quantity:        r.Quantity,
		Protein:         r.Protein,
		Sides:           r.Sides,
		CustomerMessage: r.CustomerMessage,
	}
}
