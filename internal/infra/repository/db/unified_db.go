package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	GetDB() *gorm.DB
	InitMigrate() error
	// ExecTx fn 內的所有操作在同一個transaction, fn 回傳錯誤時rollback
	ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error

	IUserRepository
	IAddressRepository
	ICatalogRepository
	ICartRepository
	IPromoRepository
	IOrderRepository
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	HardDeleteUser(ctx context.Context, id uuid.UUID) error
	CountReferredUsers(ctx context.Context, referrerID uuid.UUID) (int64, error)
}

// IAddressRepository Address 相關操作介面
type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, id uuid.UUID) error
	UnsetDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) error
}

// ICatalogRepository 分類與餐點操作介面
type ICatalogRepository interface {
	CreateCategory(ctx context.Context, category *model.FoodCategory) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.FoodCategory, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error)
	UpdateCategory(ctx context.Context, category *model.FoodCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountFoodItemsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	CreateFoodItem(ctx context.Context, item *model.FoodItem) error
	GetFoodItemByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)
	GetFoodItemBySlug(ctx context.Context, slug string) (*model.FoodItem, error)
	ListFoodItems(ctx context.Context, filter FoodItemFilter) ([]model.FoodItem, int64, error)
	UpdateFoodItem(ctx context.Context, item *model.FoodItem) error
	DeleteFoodItem(ctx context.Context, id uuid.UUID) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetCartItemByID(ctx context.Context, id uuid.UUID) (*model.CartItem, error)
	FindCartItemBySignature(ctx context.Context, cartID, foodItemID uuid.UUID, protein model.Protein, sidesKey string) (*model.CartItem, error)
	UpsertCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItem(ctx context.Context, item *model.CartItem) error
	DeleteCartItem(ctx context.Context, id uuid.UUID) error
	ClearCartItems(ctx context.Context, cartID uuid.UUID) error
	DeleteCartItems(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error
}

// IPromoRepository PromoCode 相關操作介面
type IPromoRepository interface {
	CreatePromoCode(ctx context.Context, promo *model.PromoCode) error
	GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error)
	GetActivePromoCode(ctx context.Context, code string, now time.Time) (*model.PromoCode, error)
	GetPromoCodeByOwner(ctx context.Context, ownerID uuid.UUID) (*model.PromoCode, error)
	ListPromoCodes(ctx context.Context, paging Paging) ([]model.PromoCode, int64, error)
	UpdatePromoCode(ctx context.Context, promo *model.PromoCode) error
	IncrementPromoUses(ctx context.Context, code string) (bool, error)
	IncrementReferralUses(ctx context.Context, ownerID uuid.UUID) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, order *model.Order) error
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	SumRevenue(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*UserRepo
	*AddressRepo
	*CatalogRepo
	*CartRepo
	*PromoRepo
	*OrderRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:          db,
		dbDao:       dbDao,
		UserRepo:    NewUserRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		CatalogRepo: NewCatalogRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		PromoRepo:   NewPromoRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

// ExecTx 以 tx 建立新的 UnifiedDBImpl 傳給 fn
func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

var (
	_ UnifiedDB          = (*UnifiedDBImpl)(nil)
	_ IUserRepository    = (*UserRepo)(nil)
	_ IAddressRepository = (*AddressRepo)(nil)
	_ ICatalogRepository = (*CatalogRepo)(nil)
	_ ICartRepository    = (*CartRepo)(nil)
	_ IPromoRepository   = (*PromoRepo)(nil)
	_ IOrderRepository   = (*OrderRepo)(nil)
)
