package redis_repo

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/cache"
	"github.com/google/uuid"
)

// FoodItemPage 分頁查詢結果的快取格式
type FoodItemPage struct {
	Items []model.FoodItem `json:"items"`
	Total int64            `json:"total"`
}

// ICatalogCacheRepository 查詢失敗(含 cache.ErrCacheMiss)時由呼叫端回源db
type ICatalogCacheRepository interface {
	GetCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error)
	SetCategories(ctx context.Context, activeOnly bool, categories []model.FoodCategory) error
	InvalidateCategories(ctx context.Context) error

	GetFoodItemPage(ctx context.Context, queryKey string) (*FoodItemPage, error)
	SetFoodItemPage(ctx context.Context, queryKey string, page *FoodItemPage) error
	InvalidateFoodItemPages(ctx context.Context) error

	GetFoodItem(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)
	SetFoodItem(ctx context.Context, item *model.FoodItem) error
	InvalidateFoodItem(ctx context.Context, id uuid.UUID) error
	InvalidateAllFoodItems(ctx context.Context) error
}

/*
結構:
categories:active / categories:all : json
menu:{queryKey} : json
food_item:{id} : json
*/
type CatalogCacheRepo struct {
	cache cache.Cache
}

func NewCatalogCacheRepo(c cache.Cache) *CatalogCacheRepo {
	return &CatalogCacheRepo{cache: c}
}

var _ ICatalogCacheRepository = (*CatalogCacheRepo)(nil)

func generateCategoriesKey(activeOnly bool) string {
	if activeOnly {
		return "categories:active"
	}
	return "categories:all"
}

func generateMenuKey(queryKey string) string {
	return fmt.Sprintf("menu:%s", queryKey)
}

func generateFoodItemKey(id uuid.UUID) string {
	return fmt.Sprintf("food_item:%s", id)
}

func (r *CatalogCacheRepo) GetCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	var categories []model.FoodCategory
	if err := r.cache.GetJSON(ctx, generateCategoriesKey(activeOnly), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogCacheRepo) SetCategories(ctx context.Context, activeOnly bool, categories []model.FoodCategory) error {
	return r.cache.SetJSON(ctx, generateCategoriesKey(activeOnly), categories, constants.CategoriesCacheTTL)
}

func (r *CatalogCacheRepo) InvalidateCategories(ctx context.Context) error {
	return r.cache.Delete(ctx, generateCategoriesKey(true), generateCategoriesKey(false))
}

func (r *CatalogCacheRepo) GetFoodItemPage(ctx context.Context, queryKey string) (*FoodItemPage, error) {
	var page FoodItemPage
	if err := r.cache.GetJSON(ctx, generateMenuKey(queryKey), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *CatalogCacheRepo) SetFoodItemPage(ctx context.Context, queryKey string, page *FoodItemPage) error {
	return r.cache.SetJSON(ctx, generateMenuKey(queryKey), page, constants.MenuItemsCacheTTL)
}

func (r *CatalogCacheRepo) InvalidateFoodItemPages(ctx context.Context) error {
	return r.cache.DeleteByPattern(ctx, generateMenuKey("*"))
}

func (r *CatalogCacheRepo) GetFoodItem(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := r.cache.GetJSON(ctx, generateFoodItemKey(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogCacheRepo) SetFoodItem(ctx context.Context, item *model.FoodItem) error {
	return r.cache.SetJSON(ctx, generateFoodItemKey(item.ID), item, constants.SingleItemCacheTTL)
}

func (r *CatalogCacheRepo) InvalidateFoodItem(ctx context.Context, id uuid.UUID) error {
	return r.cache.Delete(ctx, generateFoodItemKey(id))
}

// InvalidateAllFoodItems 分類異動時, 單筆快取內嵌的分類資料也需失效
func (r *CatalogCacheRepo) InvalidateAllFoodItems(ctx context.Context) error {
	return r.cache.DeleteByPattern(ctx, "food_item:*")
}
