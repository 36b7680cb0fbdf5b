package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CatalogHandler 分類與餐點, 讀取為公開路由, 寫入為 /admin 路由
type CatalogHandler struct {
	catalogService service.ICatalogService
}

func NewCatalogHandler(catalogService service.ICatalogService) *CatalogHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories 公開路由只列出啟用中的分類
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context(), true)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, categories, "")
}

// AdminListCategories 包含停用的分類
func (h *CatalogHandler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context(), false)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, categories, "")
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogService.GetCategory(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, category, "")
}

func (h *CatalogHandler) ListFoodItemsByCategory(w http.ResponseWriter, r *http.Request) {
	paging, err := pagingQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.catalogService.ListFoodItemsByCategory(r.Context(), chi.URLParam(r, "idOrSlug"), paging)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

// ListFoodItems 公開路由未指定 is_available 時只列出可供應的餐點
func (h *CatalogHandler) ListFoodItems(w http.ResponseWriter, r *http.Request) {
	filter, err := foodItemFilterQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if filter.IsAvailable == nil {
		available := true
		filter.IsAvailable = &available
	}
	h.listFoodItems(w, r, filter)
}

func (h *CatalogHandler) AdminListFoodItems(w http.ResponseWriter, r *http.Request) {
	filter, err := foodItemFilterQuery(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	h.listFoodItems(w, r, filter)
}

func (h *CatalogHandler) listFoodItems(w http.ResponseWriter, r *http.Request, filter db.FoodItemFilter) {
	result, err := h.catalogService.ListFoodItems(r.Context(), filter)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

// foodItemFilterQuery 解析 category_id, is_available, is_featured, search, page, limit
func foodItemFilterQuery(r *http.Request) (db.FoodItemFilter, error) {
	var filter db.FoodItemFilter
	q := r.URL.Query()

	paging, err := pagingQuery(r)
	if err != nil {
		return filter, err
	}
	filter.Paging = paging

	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, badRequest("invalid category_id")
		}
		filter.CategoryID = &id
	}
	if filter.IsAvailable, err = boolQuery(q.Get("is_available"), "is_available"); err != nil {
		return filter, err
	}
	if filter.IsFeatured, err = boolQuery(q.Get("is_featured"), "is_featured"); err != nil {
		return filter, err
	}
	filter.Search = q.Get("search")
	return filter, nil
}

func (h *CatalogHandler) GetFoodItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalogService.GetFoodItem(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, item, "")
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, category, "category created")
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateCategoryRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, category, "category updated")
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "category deleted")
}

func (h *CatalogHandler) ToggleCategoryActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	category, err := h.catalogService.ToggleCategoryActive(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, category, "")
}

func (h *CatalogHandler) CreateFoodItem(w http.ResponseWriter, r *http.Request) {
	var req dto.FoodItemRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	item, err := h.catalogService.CreateFoodItem(r.Context(), req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, item, "food item created")
}

func (h *CatalogHandler) UpdateFoodItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req dto.UpdateFoodItemRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	item, err := h.catalogService.UpdateFoodItem(r.Context(), id, req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, item, "food item updated")
}

func (h *CatalogHandler) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.catalogService.DeleteFoodItem(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "food item deleted")
}

func (h *CatalogHandler) ToggleFoodItemAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	item, err := h.catalogService.ToggleFoodItemAvailability(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, item, "")
}

func (h *CatalogHandler) ToggleFoodItemFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	item, err := h.catalogService.ToggleFoodItemFeatured(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, item, "")
}
