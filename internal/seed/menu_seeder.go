package seed

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/kitchen/internal/config"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	ItemsCreated      int
	ItemsSkipped      int
}

// SeedMenu 依slug判斷是否已存在, 已存在的分類與餐點不會被覆寫, 可以重複執行
func SeedMenu(ctx context.Context, catalog service.ICatalogService, menu *config.MenuConfig) (*Result, error) {
	result := &Result{}
	for _, c := range menu.Categories {
		category, err := catalog.GetCategory(ctx, util.GenerateSlug(c.Name))
		switch {
		case err == nil:
			result.CategoriesSkipped++
		case apperr.Is(err, apperr.NotFoundCode):
			category, err = catalog.CreateCategory(ctx, service.CategoryParams{
				Name:         c.Name,
				Description:  c.Description,
				ImageURL:     c.ImageURL,
				DisplayOrder: c.DisplayOrder,
				IsActive:     true,
			})
			if err != nil {
				return result, fmt.Errorf("create category %q: %w", c.Name, err)
			}
			result.CategoriesCreated++
			log.Info().Str("category", category.Name).Msg("category seeded")
		default:
			return result, fmt.Errorf("get category %q: %w", c.Name, err)
		}

		for _, item := range c.Items {
			created, err := seedItem(ctx, catalog, category.ID, item)
			if err != nil {
				return result, err
			}
			if created {
				result.ItemsCreated++
			} else {
				result.ItemsSkipped++
			}
		}
	}
	return result, nil
}

func seedItem(ctx context.Context, catalog service.ICatalogService, categoryID uuid.UUID, item config.MenuItem) (bool, error) {
	_, err := catalog.GetFoodItem(ctx, util.GenerateSlug(item.Name))
	if err == nil {
		return false, nil
	}
	if !apperr.Is(err, apperr.NotFoundCode) {
		return false, fmt.Errorf("get food item %q: %w", item.Name, err)
	}

	price, err := decimal.NewFromString(item.BasePrice)
	if err != nil {
		return false, fmt.Errorf("food item %q: invalid base_price %q", item.Name, item.BasePrice)
	}
	_, err = catalog.CreateFoodItem(ctx, service.FoodItemParams{
		CategoryID:           categoryID,
		Name:                 item.Name,
		Description:          item.Description,
		BasePrice:            price,
		ImageURL:             item.ImageURL,
		PreparationTime:      item.PreparationTime,
		IsAvailable:          true,
		IsFeatured:           item.IsFeatured,
		AllowProteinChoice:   item.AllowProteinChoice,
		AllowExtraSides:      item.AllowExtraSides,
		AllowCustomerMessage: item.AllowCustomerMessage,
	})
	if err != nil {
		return false, fmt.Errorf("create food item %q: %w", item.Name, err)
	}
	log.Info().Str("food_item", item.Name).Msg("food item seeded")
	return true, nil
}
