package dto

import "github.com/RoyceAzure/lab/kitchen/internal/service"

// UpdateProfileRequest 未帶的欄位不更新, phone_number 傳空字串代表清除
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName    *string `json:"last_name" validate:"omitnil,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
}

func (r UpdateProfileRequest) Params() service.UpdateProfileParams {
	return service.UpdateProfileParams{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type AddressRequest struct {
	Label     string `json:"label" validate:"omitempty,max=50"`
	Number    string `json:"number" validate:"required,max=20"`
	Street    string `json:"street" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) Params() service.AddressParams {
	return service.AddressParams{
		Label:     r.Label,
		Number:    r.Number,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		IsDefault: r.IsDefault,
	}
}

type UpdateAddressRequest struct {
	Label     *string `json:"label" validate:"omitempty,max=50"`
	Number    *string `json:"number" validate:"omitnil,min=1,max=20"`
	Street    *string `json:"street" validate:"omitnil,min=1,max=255"`
	City      *string `json:"city" validate:"omitnil,min=1,max=100"`
	State     *string `json:"state" validate:"omitnil,min=1,max=100"`
	IsDefault *bool   `json:"is_default"`
}

func (r UpdateAddressRequest) Params() service.UpdateAddressParams {
	return service.UpdateAddressParams{
		Label:     r.Label,
		Number:    r.Number,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		IsDefault: r.IsDefault,
	}
}
