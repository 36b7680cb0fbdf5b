package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), payload.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, cart, "")
}

func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	count, err := h.cartService.Count(r.Context(), payload.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, count, "")
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.AddCartItemRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), payload.UserID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, cart, "item added to cart")
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	itemID, err := uuidParam(r, "itemID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateCartItemRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	cart, err := h.cartService.UpdateItem(r.Context(), payload.UserID, itemID, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, cart, "cart item updated")
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	itemID, err := uuidParam(r, "itemID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), payload.UserID, itemID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, cart, "item removed from cart")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.cartService.Clear(r.Context(), payload.UserID); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "cart cleared")
}
