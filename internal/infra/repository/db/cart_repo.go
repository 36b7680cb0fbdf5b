package db

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 購物車存放於db, 下單時才能與訂單在同一個transaction內清空
type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.FoodItem")
}

// GetCartByUserID 購物車不存在時回傳 gorm.ErrRecordNotFound
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).Scopes(preloadCartItems).First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart 冪等, 併發呼叫也只會建立一台購物車
func (s *CartRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart := model.Cart{UserID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil {
		return nil, errors.Wrap(err, "create cart")
	}
	return s.GetCartByUserID(ctx, userID)
}

func (s *CartRepo) GetCartItemByID(ctx context.Context, id uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	if err := s.db.WithContext(ctx).Preload("Cart").Preload("FoodItem").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) FindCartItemBySignature(ctx context.Context, cartID, foodItemID uuid.UUID, protein model.Protein, sidesKey string) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND food_item_id = ? AND selected_protein = ? AND sides_key = ?", cartID, foodItemID, protein, sidesKey).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartItem 相同簽章已存在時累加數量, 有新留言才覆蓋, 單價維持原本
// 衝突時 item.ID 不代表實際資料列
func (s *CartRepo) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	err := s.db.WithContext(ctx).
		Omit("Cart", "FoodItem").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "cart_id"},
				{Name: "food_item_id"},
				{Name: "selected_protein"},
				{Name: "sides_key"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":         gorm.Expr("cart_items.quantity + excluded.quantity"),
				"customer_message": gorm.Expr("COALESCE(NULLIF(excluded.customer_message, ''), cart_items.customer_message)"),
				"updated_at":       gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(item).Error
	return errors.Wrap(err, "upsert cart item")
}

func (s *CartRepo) UpdateCartItem(ctx context.Context, item *model.CartItem) error {
	return errors.Wrap(s.db.WithContext(ctx).Omit("Cart", "FoodItem").Save(item).Error, "update cart item")
}

func (s *CartRepo) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	return errors.Wrap(s.db.WithContext(ctx).Delete(&model.CartItem{}, "id = ?", id).Error, "delete cart item")
}

func (s *CartRepo) ClearCartItems(ctx context.Context, cartID uuid.UUID) error {
	return errors.Wrap(s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error, "clear cart")
}

// DeleteCartItems 只刪除指定的品項, 之後才加入購物車的品項保留
func (s *CartRepo) DeleteCartItems(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, ids).
		Delete(&model.CartItem{}).Error
	return errors.Wrap(err, "delete cart items")
}
