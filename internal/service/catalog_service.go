package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ICatalogService interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error)
	GetCategory(ctx context.Context, idOrSlug string) (*model.FoodCategory, error)
	CreateCategory(ctx context.Context, arg CategoryParams) (*model.FoodCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, arg UpdateCategoryParams) (*model.FoodCategory, error)
	// DeleteCategory 分類下仍有餐點時回傳 ConflictCode
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ToggleCategoryActive(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error)

	ListFoodItems(ctx context.Context, filter db.FoodItemFilter) (*PagedResult[model.FoodItem], error)
	// ListFoodItemsByCategory 只列出可供應的餐點
	ListFoodItemsByCategory(ctx context.Context, categoryIDOrSlug string, paging db.Paging) (*PagedResult[model.FoodItem], error)
	GetFoodItem(ctx context.Context, idOrSlug string) (*model.FoodItem, error)
	CreateFoodItem(ctx context.Context, arg FoodItemParams) (*model.FoodItem, error)
	UpdateFoodItem(ctx context.Context, id uuid.UUID, arg UpdateFoodItemParams) (*model.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id uuid.UUID) error
	ToggleFoodItemAvailability(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)
	ToggleFoodItemFeatured(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)
}

type CategoryParams struct {
	Name         string
	Description  string
	ImageURL     string
	DisplayOrder int
	IsActive     bool
}

type UpdateCategoryParams struct {
	Name         *string
	Description  *string
	ImageURL     *string
	DisplayOrder *int
	IsActive     *bool
}

type FoodItemParams struct {
	CategoryID           uuid.UUID
	Name                 string
	Description          string
	BasePrice            decimal.Decimal
	ImageURL             string
	PreparationTime      int
	IsAvailable          bool
	IsFeatured           bool
	AllowProteinChoice   bool
	AllowExtraSides      bool
	AllowCustomerMessage bool
}

type UpdateFoodItemParams struct {
	CategoryID           *uuid.UUID
	Name                 *string
	Description          *string
	BasePrice            *decimal.Decimal
	ImageURL             *string
	PreparationTime      *int
	IsAvailable          *bool
	IsFeatured           *bool
	AllowProteinChoice   *bool
	AllowExtraSides      *bool
	AllowCustomerMessage *bool
}

// CatalogService repo 為 cache-aside decorator, 寫入時由decorator負責失效快取
type CatalogService struct {
	repo db.ICatalogRepository
}

func NewCatalogService(repo db.ICatalogRepository) *CatalogService {
	if isNil(repo) {
		panic("catalog service initialization failed: repo cannot be nil")
	}
	return &CatalogService{repo: repo}
}

var _ ICatalogService = (*CatalogService)(nil)

func (c *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	categories, err := c.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

func (c *CatalogService) GetCategory(ctx context.Context, idOrSlug string) (*model.FoodCategory, error) {
	var (
		category *model.FoodCategory
		err      error
	)
	if id, ok := parseIDOrSlug(idOrSlug); ok {
		category, err = c.repo.GetCategoryByID(ctx, id)
	} else {
		category, err = c.repo.GetCategoryBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, dbError(err, "category not found")
	}
	return category, nil
}

func (c *CatalogService) CreateCategory(ctx context.Context, arg CategoryParams) (*model.FoodCategory, error) {
	name := strings.TrimSpace(arg.Name)
	category := &model.FoodCategory{
		Name:         name,
		Slug:         util.GenerateSlug(name),
		Description:  arg.Description,
		ImageURL:     arg.ImageURL,
		DisplayOrder: arg.DisplayOrder,
		IsActive:     arg.IsActive,
	}
	if category.Slug == "" {
		return nil, apperr.New(apperr.ValidationCode, "category name must contain letters or digits")
	}
	if err := c.repo.CreateCategory(ctx, category); err != nil {
		return nil, catalogWriteError(err, "category not found", "category with this name already exists")
	}
	log.Info().Str("category_id", category.ID.String()).Msg("category created")
	return category, nil
}

func (c *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, arg UpdateCategoryParams) (*model.FoodCategory, error) {
	category, err := c.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "category not found")
	}

	if arg.Name != nil {
		name := strings.TrimSpace(*arg.Name)
		slug := util.GenerateSlug(name)
		if slug == "" {
			return nil, apperr.New(apperr.ValidationCode, "category name must contain letters or digits")
		}
		category.Name = name
		category.Slug = slug
	}
	if arg.Description != nil {
		category.Description = *arg.Description
	}
	if arg.ImageURL != nil {
		category.ImageURL = *arg.ImageURL
	}
	if arg.DisplayOrder != nil {
		category.DisplayOrder = *arg.DisplayOrder
	}
	if arg.IsActive != nil {
		category.IsActive = *arg.IsActive
	}

	if err := c.repo.UpdateCategory(ctx, category); err != nil {
		return nil, catalogWriteError(err, "category not found", "category with this name already exists")
	}
	return category, nil
}

func (c *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := c.repo.GetCategoryByID(ctx, id); err != nil {
		return dbError(err, "category not found")
	}

	count, err := c.repo.CountFoodItemsByCategory(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Newf(apperr.ConflictCode, "category still has %d food items", count)
	}

	if err := c.repo.DeleteCategory(ctx, id); err != nil {
		return dbError(err, "category not found")
	}
	log.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}

func (c *CatalogService) ToggleCategoryActive(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error) {
	category, err := c.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "category not found")
	}
	category.IsActive = !category.IsActive
	if err := c.repo.UpdateCategory(ctx, category); err != nil {
		return nil, dbError(err, "category not found")
	}
	return category, nil
}

func (c *CatalogService) ListFoodItems(ctx context.Context, filter db.FoodItemFilter) (*PagedResult[model.FoodItem], error) {
	filter.Paging = filter.Paging.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)
	items, total, err := c.repo.ListFoodItems(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPagedResult(items, total, filter.Paging), nil
}

func (c *CatalogService) ListFoodItemsByCategory(ctx context.Context, categoryIDOrSlug string, paging db.Paging) (*PagedResult[model.FoodItem], error) {
	category, err := c.GetCategory(ctx, categoryIDOrSlug)
	if err != nil {
		return nil, err
	}
	available := true
	return c.ListFoodItems(ctx, db.FoodItemFilter{
		CategoryID:  &category.ID,
		IsAvailable: &available,
		Paging:      paging,
	})
}

func (c *CatalogService) GetFoodItem(ctx context.Context, idOrSlug string) (*model.FoodItem, error) {
	var (
		item *model.FoodItem
		err  error
	)
	if id, ok := parseIDOrSlug(idOrSlug); ok {
		item, err = c.repo.GetFoodItemByID(ctx, id)
	} else {
		item, err = c.repo.GetFoodItemBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, dbError(err, "food item not found")
	}
	return item, nil
}

func (c *CatalogService) CreateFoodItem(ctx context.Context, arg FoodItemParams) (*model.FoodItem, error) {
	if arg.BasePrice.IsNegative() {
		return nil, apperr.New(apperr.ValidationCode, "base price must not be negative")
	}
	if _, err := c.repo.GetCategoryByID(ctx, arg.CategoryID); err != nil {
		return nil, dbError(err, "category not found")
	}

	name := strings.TrimSpace(arg.Name)
	item := &model.FoodItem{
		CategoryID:           arg.CategoryID,
		Name:                 name,
		Slug:                 util.GenerateSlug(name),
		Description:          arg.Description,
		BasePrice:            arg.BasePrice,
		ImageURL:             arg.ImageURL,
		PreparationTime:      arg.PreparationTime,
		IsAvailable:          arg.IsAvailable,
		IsFeatured:           arg.IsFeatured,
		AllowProteinChoice:   arg.AllowProteinChoice,
		AllowExtraSides:      arg.AllowExtraSides,
		AllowCustomerMessage: arg.AllowCustomerMessage,
	}
	if item.Slug == "" {
		return nil, apperr.New(apperr.ValidationCode, "food item name must contain letters or digits")
	}

	if err := c.repo.CreateFoodItem(ctx, item); err != nil {
		return nil, catalogWriteError(err, "food item not found", "food item with this name already exists")
	}
	log.Info().Str("food_item_id", item.ID.String()).Msg("food item created")
	return item, nil
}

func (c *CatalogService) UpdateFoodItem(ctx context.Context, id uuid.UUID, arg UpdateFoodItemParams) (*model.FoodItem, error) {
	item, err := c.repo.GetFoodItemByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "food item not found")
	}

	if arg.CategoryID != nil && *arg.CategoryID != item.CategoryID {
		category, err := c.repo.GetCategoryByID(ctx, *arg.CategoryID)
		if err != nil {
			return nil, dbError(err, "category not found")
		}
		item.CategoryID = category.ID
		item.Category = category
	}
	if arg.Name != nil {
		name := strings.TrimSpace(*arg.Name)
		slug := util.GenerateSlug(name)
		if slug == "" {
			return nil, apperr.New(apperr.ValidationCode, "food item name must contain letters or digits")
		}
		item.Name = name
		item.Slug = slug
	}
	if arg.Description != nil {
		item.Description = *arg.Description
	}
	if arg.BasePrice != nil {
		if arg.BasePrice.IsNegative() {
			return nil, apperr.New(apperr.ValidationCode, "base price must not be negative")
		}
		item.BasePrice = *arg.BasePrice
	}
	if arg.ImageURL != nil {
		item.ImageURL = *arg.ImageURL
	}
	if arg.PreparationTime != nil {
		item.PreparationTime = *arg.PreparationTime
	}
	if arg.IsAvailable != nil {
		item.IsAvailable = *arg.IsAvailable
	}
	if arg.IsFeatured != nil {
		item.IsFeatured = *arg.IsFeatured
	}
	if arg.AllowProteinChoice != nil {
		item.AllowProteinChoice = *arg.AllowProteinChoice
	}
	if arg.AllowExtraSides != nil {
		item.AllowExtraSides = *arg.AllowExtraSides
	}
	if arg.AllowCustomerMessage != nil {
		item.AllowCustomerMessage = *arg.AllowCustomerMessage
	}

	if err := c.repo.UpdateFoodItem(ctx, item); err != nil {
		return nil, catalogWriteError(err, "food item not found", "food item with this name already exists")
	}
	return item, nil
}

func (c *CatalogService) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	if _, err := c.repo.GetFoodItemByID(ctx, id); err != nil {
		return dbError(err, "food item not found")
	}
	if err := c.repo.DeleteFoodItem(ctx, id); err != nil {
		return dbError(err, "food item not found")
	}
	log.Info().Str("food_item_id", id.String()).Msg("food item deleted")
	return nil
}

func (c *CatalogService) ToggleFoodItemAvailability(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	return c.toggleFoodItem(ctx, id, func(item *model.FoodItem) {
		item.IsAvailable = !item.IsAvailable
	})
}

func (c *CatalogService) ToggleFoodItemFeatured(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	return c.toggleFoodItem(ctx, id, func(item *model.FoodItem) {
		item.IsFeatured = !item.IsFeatured
	})
}

func (c *CatalogService) toggleFoodItem(ctx context.Context, id uuid.UUID, toggle func(item *model.FoodItem)) (*model.FoodItem, error) {
	item, err := c.repo.GetFoodItemByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "food item not found")
	}
	toggle(item)
	if err := c.repo.UpdateFoodItem(ctx, item); err != nil {
		return nil, dbError(err, "food item not found")
	}
	return item, nil
}

// catalogWriteError name/slug 重複時給出明確訊息
func catalogWriteError(err error, notFoundMsg, conflictMsg string) error {
	if db.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.ConflictCode, conflictMsg, err)
	}
	return dbError(err, notFoundMsg)
}
