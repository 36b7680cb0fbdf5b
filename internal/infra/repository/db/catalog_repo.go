package db

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CatalogRepo struct {
	db *DbDao
}

func NewCatalogRepo(db *DbDao) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// Category

func (s *CatalogRepo) CreateCategory(ctx context.Context, category *model.FoodCategory) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(category).Error, "create category")
}

func (s *CatalogRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error) {
	var category model.FoodCategory
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogRepo) GetCategoryBySlug(ctx context.Context, slug string) (*model.FoodCategory, error) {
	var category model.FoodCategory
	if err := s.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	var categories []model.FoodCategory
	q := s.db.WithContext(ctx).Order("display_order ASC").Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&categories).Error
	return categories, err
}

func (s *CatalogRepo) UpdateCategory(ctx context.Context, category *model.FoodCategory) error {
	return errors.Wrap(s.db.WithContext(ctx).Save(category).Error, "update category")
}

func (s *CatalogRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(s.db.WithContext(ctx).Delete(&model.FoodCategory{}, "id = ?", id).Error, "delete category")
}

func (s *CatalogRepo) CountFoodItemsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.FoodItem{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Food item

func (s *CatalogRepo) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(item).Error, "create food item")
}

func (s *CatalogRepo) GetFoodItemByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := s.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogRepo) GetFoodItemBySlug(ctx context.Context, slug string) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := s.db.WithContext(ctx).Preload("Category").First(&item, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListFoodItems 回傳符合條件的分頁資料與總筆數
func (s *CatalogRepo) ListFoodItems(ctx context.Context, filter FoodItemFilter) ([]model.FoodItem, int64, error) {
	var (
		items []model.FoodItem
		total int64
	)

	query := s.db.WithContext(ctx).Model(&model.FoodItem{}).Scopes(foodItemConditions(filter))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Scopes(foodItemConditions(filter), paginate(filter.Paging)).
		Preload("Category").
		Order("is_featured DESC").
		Order("name ASC").
		Find(&items).Error
	return items, total, err
}

func foodItemConditions(filter FoodItemFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.IsAvailable != nil {
			db = db.Where("is_available = ?", *filter.IsAvailable)
		}
		if filter.IsFeatured != nil {
			db = db.Where("is_featured = ?", *filter.IsFeatured)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			db = db.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
		}
		return db
	}
}

func (s *CatalogRepo) UpdateFoodItem(ctx context.Context, item *model.FoodItem) error {
	return errors.Wrap(s.db.WithContext(ctx).Omit("Category").Save(item).Error, "update food item")
}

func (s *CatalogRepo) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(s.db.WithContext(ctx).Delete(&model.FoodItem{}, "id = ?", id).Error, "delete food item")
}
