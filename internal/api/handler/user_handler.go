package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
)

// UserHandler /users/me 底下的路由, 全部需登入
type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), payload.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, user, "")
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateProfileRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), payload.UserID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, user, "profile updated")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.ChangePasswordRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), payload.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "password changed, please log in again")
}

func (h *UserHandler) GetReferralInfo(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	info, err := h.userService.GetReferralInfo(r.Context(), payload.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, info, "")
}

func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	addresses, err := h.userService.ListAddresses(r.Context(), payload.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, addresses, "")
}

func (h *UserHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.AddressRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	address, err := h.userService.CreateAddress(r.Context(), payload.UserID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, address, "address created")
}

func (h *UserHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	addressID, err := uuidParam(r, "addressID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	address, err := h.userService.GetAddress(r.Context(), payload.UserID, addressID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, address, "")
}

func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	addressID, err := uuidParam(r, "addressID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateAddressRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	address, err := h.userService.UpdateAddress(r.Context(), payload.UserID, addressID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, address, "address updated")
}

func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	addressID, err := uuidParam(r, "addressID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.userService.DeleteAddress(r.Context(), payload.UserID, addressID); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "address deleted")
}

func (h *UserHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	addressID, err := uuidParam(r, "addressID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	address, err := h.userService.SetDefaultAddress(r.Context(), payload.UserID, addressID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, address, "default address updated")
}
