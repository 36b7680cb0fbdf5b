package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/go-chi/chi/v5"
)

// PromoHandler /admin/promo-codes
type PromoHandler struct {
	promoService service.IPromoService
}

func NewPromoHandler(promoService service.IPromoService) *PromoHandler {
	if promoService == nil {
		panic("promoService cannot be nil")
	}
	return &PromoHandler{promoService: promoService}
}

func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PromoCodeRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	promo, err := h.promoService.CreatePromoCode(r.Context(), req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, promo, "promo code created")
}

func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	paging, err := pagingQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.promoService.ListPromoCodes(r.Context(), paging)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

func (h *PromoHandler) Get(w http.ResponseWriter, r *http.Request) {
	promo, err := h.promoService.GetPromoCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, promo, "")
}

func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePromoCodeRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	promo, err := h.promoService.UpdatePromoCode(r.Context(), chi.URLParam(r, "code"), req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, promo, "promo code updated")
}

func (h *PromoHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	promo, err := h.promoService.DeactivatePromoCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, promo, "promo code deactivated")
}
