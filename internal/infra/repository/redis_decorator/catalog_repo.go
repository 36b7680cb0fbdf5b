package redis_decorator

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

/*
菜單讀多寫少, 查詢走 cache-aside
寫入db成功後使相關快取失效, 快取操作失敗只記錄log不影響結果
*/
type CacheAsideCatalogRepo struct {
	db.ICatalogRepository
	redis redis_repo.ICatalogCacheRepository
}

func NewCacheAsideCatalogRepo(dbRepo db.ICatalogRepository, redis redis_repo.ICatalogCacheRepository) *CacheAsideCatalogRepo {
	if dbRepo == nil {
		panic("NewCacheAsideCatalogRepo: db repository cannot be nil")
	}
	if redis == nil {
		panic("NewCacheAsideCatalogRepo: redis repository cannot be nil")
	}
	return &CacheAsideCatalogRepo{ICatalogRepository: dbRepo, redis: redis}
}

var _ db.ICatalogRepository = (*CacheAsideCatalogRepo)(nil)

func (p *CacheAsideCatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	if categories, err := p.redis.GetCategories(ctx, activeOnly); err == nil {
		return categories, nil
	}

	categories, err := p.ICatalogRepository.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if err := p.redis.SetCategories(ctx, activeOnly, categories); err != nil {
		log.Warn().Err(err).Msg("cache categories failed")
	}
	return categories, nil
}

func (p *CacheAsideCatalogRepo) GetFoodItemByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	if item, err := p.redis.GetFoodItem(ctx, id); err == nil {
		return item, nil
	}

	item, err := p.ICatalogRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.redis.SetFoodItem(ctx, item); err != nil {
		log.Warn().Err(err).Str("food_item_id", id.String()).Msg("cache food item failed")
	}
	return item, nil
}

func (p *CacheAsideCatalogRepo) ListFoodItems(ctx context.Context, filter db.FoodItemFilter) ([]model.FoodItem, int64, error) {
	key := FoodItemFilterKey(filter)
	if page, err := p.redis.GetFoodItemPage(ctx, key); err == nil {
		return page.Items, page.Total, nil
	}

	items, total, err := p.ICatalogRepository.ListFoodItems(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := p.redis.SetFoodItemPage(ctx, key, &redis_repo.FoodItemPage{Items: items, Total: total}); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache food item page failed")
	}
	return items, total, nil
}

// FoodItemFilterKey 相同查詢條件產生相同key
func FoodItemFilterKey(filter db.FoodItemFilter) string {
	paging := filter.Paging.Normalize()
	category := "-"
	if filter.CategoryID != nil {
		category = filter.CategoryID.String()
	}
	return fmt.Sprintf("c=%s|a=%s|f=%s|q=%s|p=%d|l=%d",
		category,
		boolKey(filter.IsAvailable),
		boolKey(filter.IsFeatured),
		strings.ToLower(strings.TrimSpace(filter.Search)),
		paging.Page,
		paging.Limit,
	)
}

func boolKey(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "1"
	}
	return "0"
}

func (p *CacheAsideCatalogRepo) CreateCategory(ctx context.Context, category *model.FoodCategory) error {
	if err := p.ICatalogRepository.CreateCategory(ctx, category); err != nil {
		return err
	}
	p.invalidateCategories(ctx)
	return nil
}

func (p *CacheAsideCatalogRepo) UpdateCategory(ctx context.Context, category *model.FoodCategory) error {
	if err := p.ICatalogRepository.UpdateCategory(ctx, category); err != nil {
		return err
	}
	p.invalidateCategories(ctx)
	return nil
}

func (p *CacheAsideCatalogRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := p.ICatalogRepository.DeleteCategory(ctx, id); err != nil {
		return err
	}
	p.invalidateCategories(ctx)
	return nil
}

func (p *CacheAsideCatalogRepo) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	if err := p.ICatalogRepository.CreateFoodItem(ctx, item); err != nil {
		return err
	}
	p.invalidateFoodItem(ctx, item.ID)
	return nil
}

func (p *CacheAsideCatalogRepo) UpdateFoodItem(ctx context.Context, item *model.FoodItem) error {
	if err := p.ICatalogRepository.UpdateFoodItem(ctx, item); err != nil {
		return err
	}
	p.invalidateFoodItem(ctx, item.ID)
	return nil
}

func (p *CacheAsideCatalogRepo) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	if err := p.ICatalogRepository.DeleteFoodItem(ctx, id); err != nil {
		return err
	}
	p.invalidateFoodItem(ctx, id)
	return nil
}

// 餐點內嵌分類資料, 分類異動時餐點快取一併失效
func (p *CacheAsideCatalogRepo) invalidateCategories(ctx context.Context) {
	if err := p.redis.InvalidateCategories(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate categories cache failed")
	}
	if err := p.redis.InvalidateAllFoodItems(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate food items cache failed")
	}
	if err := p.redis.InvalidateFoodItemPages(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate menu cache failed")
	}
}

func (p *CacheAsideCatalogRepo) invalidateFoodItem(ctx context.Context, id uuid.UUID) {
	if err := p.redis.InvalidateFoodItem(ctx, id); err != nil {
		log.Warn().Err(err).Str("food_item_id", id.String()).Msg("invalidate food item cache failed")
	}
	if err := p.redis.InvalidateFoodItemPages(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate menu cache failed")
	}
}
