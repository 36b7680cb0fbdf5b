package service

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/pricing"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	// AddItem 相同 (餐點, protein, sides集合) 的品項合併數量, 否則新增一筆
	//
	// 錯誤:
	//   - NotFoundCode 404: 餐點不存在
	//   - UnavailableCode 461: 餐點暫停供應
	//   - ValidationCode 460: 餐點不允許選擇protein, sides 或留言
	AddItem(ctx context.Context, userID uuid.UUID, arg AddCartItemParams) (*CartView, error)
	// GetCart 購物車不存在時建立空購物車
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	// UpdateItem 只有protein或sides變更時才重新計價
	// 變更後與另一筆品項簽章相同時合併至該筆
	//
	// 錯誤:
	//   - NotFoundCode 404: 品項不存在或不屬於該使用者
	//   - UnavailableCode 461: 餐點已暫停供應
	//   - ValidationCode 460: 餐點不允許選擇protein, sides 或留言
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, arg UpdateCartItemParams) (*CartView, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (*CartCount, error)
}

type AddCartItemParams struct {
	FoodItemID      uuid.UUID
	Quantity        int
	Protein         model.Protein
	Sides           []model.ExtraSide
	CustomerMessage string
}

// UpdateCartItemParams nil 代表不更新, Sides 指向空slice代表清除sides
type UpdateCartItemParams struct {
	Quantity        *int
	Protein         *model.Protein
	Sides           *[]model.ExtraSide
	CustomerMessage *string
}

type CartView struct {
	ID      uuid.UUID   `json:"id"`
	UserID  uuid.UUID   `json:"user_id"`
	Items   []CartLine  `json:"items"`
	Summary CartSummary `json:"summary"`
}

type CartLine struct {
	ID                 uuid.UUID         `json:"id"`
	FoodItemID         uuid.UUID         `json:"food_item_id"`
	FoodName           string            `json:"food_name"`
	FoodImage          string            `json:"food_image"`
	IsAvailable        bool              `json:"is_available"`
	SelectedProtein    model.Protein     `json:"selected_protein"`
	SelectedExtraSides []model.ExtraSide `json:"selected_extra_sides"`
	Quantity           int               `json:"quantity"`
	CustomerMessage    string            `json:"customer_message"`
	UnitPrice          decimal.Decimal   `json:"unit_price"`
	TotalPrice         decimal.Decimal   `json:"total_price"`
}

type CartSummary struct {
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type CartCount struct {
	ItemCount     int `json:"item_count"`
	TotalQuantity int `json:"total_quantity"`
}

type CartService struct {
	store db.UnifiedDB
}

func NewCartService(store db.UnifiedDB) *CartService {
	if isNil(store) {
		panic("cart service initialization failed: store cannot be nil")
	}
	return &CartService{store: store}
}

var _ ICartService = (*CartService)(nil)

// validateSelections 檢查選項是否為該餐點允許的
func validateSelections(food *model.FoodItem, protein model.Protein, sides []model.ExtraSide, message string) error {
	if protein != model.ProteinNone && !food.AllowProteinChoice {
		return apperr.Newf(apperr.ValidationCode, "%s does not allow protein choice", food.Name)
	}
	if len(sides) > 0 && !food.AllowExtraSides {
		return apperr.Newf(apperr.ValidationCode, "%s does not allow extra sides", food.Name)
	}
	if message != "" && !food.AllowCustomerMessage {
		return apperr.Newf(apperr.ValidationCode, "%s does not allow customer messages", food.Name)
	}
	if len(message) > constants.MaxCustomerMessageLen {
		return apperr.Newf(apperr.ValidationCode, "customer message must be at most %d characters", constants.MaxCustomerMessageLen)
	}
	return nil
}

func (c *CartService) AddItem(ctx context.Context, userID uuid.UUID, arg AddCartItemParams) (*CartView, error) {
	if arg.Quantity < 1 {
		return nil, apperr.New(apperr.ValidationCode, "quantity must be at least 1")
	}

	food, err := c.store.GetFoodItemByID(ctx, arg.FoodItemID)
	if err != nil {
		return nil, dbError(err, "food item not found")
	}
	if !food.IsAvailable {
		return nil, apperr.Newf(apperr.UnavailableCode, "%s is currently unavailable", food.Name)
	}
	sides := model.NormalizeSides(arg.Sides)
	if err := validateSelections(food, arg.Protein, sides, arg.CustomerMessage); err != nil {
		return nil, err
	}

	cart, err := c.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	item := &model.CartItem{
		CartID:          cart.ID,
		FoodItemID:      food.ID,
		SelectedProtein: arg.Protein,
		Quantity:        arg.Quantity,
		CustomerMessage: arg.CustomerMessage,
		UnitPrice:       pricing.UnitPrice(food.BasePrice, arg.Protein, sides),
	}
	item.SetSides(sides)
	if err := c.store.UpsertCartItem(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}

	return c.GetCart(ctx, userID)
}

func (c *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := c.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newCartView(cart), nil
}

// ownCartItem 品項不存在或不屬於該使用者都回傳NotFound
func ownCartItem(ctx context.Context, store db.ICartRepository, userID, itemID uuid.UUID) (*model.CartItem, error) {
	item, err := store.GetCartItemByID(ctx, itemID)
	if err != nil {
		return nil, dbError(err, "cart item not found")
	}
	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, apperr.New(apperr.NotFoundCode, "cart item not found")
	}
	return item, nil
}

func (c *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, arg UpdateCartItemParams) (*CartView, error) {
	if arg.Quantity != nil && *arg.Quantity < 1 {
		return nil, apperr.New(apperr.ValidationCode, "quantity must be at least 1")
	}

	err := c.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		item, err := ownCartItem(ctx, tx, userID, itemID)
		if err != nil {
			return err
		}
		food := item.FoodItem
		if food == nil || !food.IsAvailable {
			name := "food item"
			if food != nil {
				name = food.Name
			}
			return apperr.Newf(apperr.UnavailableCode, "%s is currently unavailable", name)
		}

		// 只驗證本次有帶入的欄位
		var (
			checkProtein model.Protein
			checkSides   []model.ExtraSide
			checkMessage string
		)
		if arg.Protein != nil {
			checkProtein = *arg.Protein
		}
		if arg.Sides != nil {
			checkSides = model.NormalizeSides(*arg.Sides)
		}
		if arg.CustomerMessage != nil {
			checkMessage = *arg.CustomerMessage
		}
		if err := validateSelections(food, checkProtein, checkSides, checkMessage); err != nil {
			return err
		}

		if arg.Quantity != nil {
			item.Quantity = *arg.Quantity
		}
		if arg.CustomerMessage != nil {
			item.CustomerMessage = *arg.CustomerMessage
		}
		if arg.Protein == nil && arg.Sides == nil {
			return tx.UpdateCartItem(ctx, item)
		}

		if arg.Protein != nil {
			item.SelectedProtein = *arg.Protein
		}
		if arg.Sides != nil {
			item.SetSides(checkSides)
		}
		item.UnitPrice = pricing.UnitPrice(food.BasePrice, item.SelectedProtein, item.Sides())

		existing, err := tx.FindCartItemBySignature(ctx, item.CartID, item.FoodItemID, item.SelectedProtein, item.SidesKey)
		switch {
		case db.IsNotFound(err):
			return tx.UpdateCartItem(ctx, item)
		case err != nil:
			return err
		case existing.ID == item.ID:
			return tx.UpdateCartItem(ctx, item)
		}

		// 與另一筆品項簽章相同, 合併後刪除本筆
		existing.Quantity += item.Quantity
		existing.UnitPrice = item.UnitPrice
		if item.CustomerMessage != "" {
			existing.CustomerMessage = item.CustomerMessage
		}
		if err := tx.DeleteCartItem(ctx, item.ID); err != nil {
			return err
		}
		return tx.UpdateCartItem(ctx, existing)
	})
	if err != nil {
		return nil, dbError(err, "cart item not found")
	}

	return c.GetCart(ctx, userID)
}

func (c *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error) {
	item, err := ownCartItem(ctx, c.store, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := c.store.DeleteCartItem(ctx, item.ID); err != nil {
		return nil, apperr.Internal(err)
	}
	return c.GetCart(ctx, userID)
}

func (c *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return apperr.Internal(err)
	}
	if err := c.store.ClearCartItems(ctx, cart.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (c *CartService) Count(ctx context.Context, userID uuid.UUID) (*CartCount, error) {
	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return &CartCount{}, nil
		}
		return nil, apperr.Internal(err)
	}
	summary := summarize(cart.Items)
	return &CartCount{ItemCount: summary.ItemCount, TotalQuantity: summary.TotalQuantity}, nil
}

// 金額每次由品項重新計算, 不存放於db
func summarize(items []model.CartItem) CartSummary {
	summary := CartSummary{ItemCount: len(items), Subtotal: decimal.Zero}
	for i := range items {
		summary.TotalQuantity += items[i].Quantity
		summary.Subtotal = summary.Subtotal.Add(items[i].TotalPrice())
	}
	return summary
}

func newCartView(cart *model.Cart) *CartView {
	view := &CartView{
		ID:      cart.ID,
		UserID:  cart.UserID,
		Items:   make([]CartLine, 0, len(cart.Items)),
		Summary: summarize(cart.Items),
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		line := CartLine{
			ID:                 item.ID,
			FoodItemID:         item.FoodItemID,
			SelectedProtein:    item.SelectedProtein,
			SelectedExtraSides: item.Sides(),
			Quantity:           item.Quantity,
			CustomerMessage:    item.CustomerMessage,
			UnitPrice:          item.UnitPrice,
			TotalPrice:         item.TotalPrice(),
		}
		if item.FoodItem != nil {
			line.FoodName = item.FoodItem.Name
			line.FoodImage = item.FoodItem.ImageURL
			line.IsAvailable = item.FoodItem.IsAvailable
		}
		view.Items = append(view.Items, line)
	}
	return view
}
