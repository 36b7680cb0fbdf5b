package router

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// 回傳值為指標時, 測試用 Return(nil, err) 需要轉型
func ptr[T any](args mock.Arguments, i int) *T {
	v := args.Get(i)
	if v == nil {
		return nil
	}
	return v.(*T)
}

type mockAuthService struct{ mock.Mock }

var _ service.IAuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Register(ctx context.Context, arg service.RegisterParams) (*model.User, error) {
	args := m.Called(ctx, arg)
	return ptr[model.User](args, 0), args.Error(1)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, email, code string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, code)
	return ptr[service.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return ptr[service.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) AdminRegister(ctx context.Context, arg service.RegisterParams, adminSecret string) (*service.AuthResult, error) {
	args := m.Called(ctx, arg, adminSecret)
	return ptr[service.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return ptr[service.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) ResendOTP(ctx context.Context, email string, purpose redis_repo.OTPPurpose) error {
	return m.Called(ctx, email, purpose).Error(0)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	return ptr[service.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUserService struct{ mock.Mock }

var _ service.IUserService = (*mockUserService)(nil)

func (m *mockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	return ptr[model.User](args, 0), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, arg service.UpdateProfileParams) (*model.User, error) {
	args := m.Called(ctx, userID, arg)
	return ptr[model.User](args, 0), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func (m *mockUserService) GetReferralInfo(ctx context.Context, userID uuid.UUID) (*service.ReferralInfo, error) {
	args := m.Called(ctx, userID)
	return ptr[service.ReferralInfo](args, 0), args.Error(1)
}

func (m *mockUserService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}

func (m *mockUserService) CreateAddress(ctx context.Context, userID uuid.UUID, arg service.AddressParams) (*model.Address, error) {
	args := m.Called(ctx, userID, arg)
	return ptr[model.Address](args, 0), args.Error(1)
}

func (m *mockUserService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	args := m.Called(ctx, userID, addressID)
	return ptr[model.Address](args, 0), args.Error(1)
}

func (m *mockUserService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, arg service.UpdateAddressParams) (*model.Address, error) {
	args := m.Called(ctx, userID, addressID, arg)
	return ptr[model.Address](args, 0), args.Error(1)
}

func (m *mockUserService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

func (m *mockUserService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	args := m.Called(ctx, userID, addressID)
	return ptr[model.Address](args, 0), args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

var _ service.ICatalogService = (*mockCatalogService)(nil)

func (m *mockCatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	args := m.Called(ctx, activeOnly)
	categories, _ := args.Get(0).([]model.FoodCategory)
	return categories, args.Error(1)
}

func (m *mockCatalogService) GetCategory(ctx context.Context, idOrSlug string) (*model.FoodCategory, error) {
	args := m.Called(ctx, idOrSlug)
	return ptr[model.FoodCategory](args, 0), args.Error(1)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, arg service.CategoryParams) (*model.FoodCategory, error) {
	args := m.Called(ctx, arg)
	return ptr[model.FoodCategory](args, 0), args.Error(1)
}

func (m *mockCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, arg service.UpdateCategoryParams) (*model.FoodCategory, error) {
	args := m.Called(ctx, id, arg)
	return ptr[model.FoodCategory](args, 0), args.Error(1)
}

func (m *mockCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ToggleCategoryActive(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error) {
	args := m.Called(ctx, id)
	return ptr[model.FoodCategory](args, 0), args.Error(1)
}

func (m *mockCatalogService) ListFoodItems(ctx context.Context, filter db.FoodItemFilter) (*service.PagedResult[model.FoodItem], error) {
	args := m.Called(ctx, filter)
	return ptr[service.PagedResult[model.FoodItem]](args, 0), args.Error(1)
}

func (m *mockCatalogService) ListFoodItemsByCategory(ctx context.Context, categoryIDOrSlug string, paging db.Paging) (*service.PagedResult[model.FoodItem], error) {
	args := m.Called(ctx, categoryIDOrSlug, paging)
	return ptr[service.PagedResult[model.FoodItem]](args, 0), args.Error(1)
}

func (m *mockCatalogService) GetFoodItem(ctx context.Context, idOrSlug string) (*model.FoodItem, error) {
	args := m.Called(ctx, idOrSlug)
	return ptr[model.FoodItem](args, 0), args.Error(1)
}

func (m *mockCatalogService) CreateFoodItem(ctx context.Context, arg service.FoodItemParams) (*model.FoodItem, error) {
	args := m.Called(ctx, arg)
	return ptr[model.FoodItem](args, 0), args.Error(1)
}

func (m *mockCatalogService) UpdateFoodItem(ctx context.Context, id uuid.UUID, arg service.UpdateFoodItemParams) (*model.FoodItem, error) {
	args := m.Called(ctx, id, arg)
	return ptr[model.FoodItem](args, 0), args.Error(1)
}

func (m *mockCatalogService) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ToggleFoodItemAvailability(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	args := m.Called(ctx, id)
	return ptr[model.FoodItem](args, 0), args.Error(1)
}

func (m *mockCatalogService) ToggleFoodItemFeatured(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	args := m.Called(ctx, id)
	return ptr[model.FoodItem](args, 0), args.Error(1)
}

type mockCartService struct{ mock.Mock }

var _ service.ICartService = (*mockCartService)(nil)

func (m *mockCartService) AddItem(ctx context.Context, userID uuid.UUID, arg service.AddCartItemParams) (*service.CartView, error) {
	args := m.Called(ctx, userID, arg)
	return ptr[service.CartView](args, 0), args.Error(1)
}

func (m *mockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*service.CartView, error) {
	args := m.Called(ctx, userID)
	return ptr[service.CartView](args, 0), args.Error(1)
}

func (m *mockCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, arg service.UpdateCartItemParams) (*service.CartView, error) {
	args := m.Called(ctx, userID, itemID, arg)
	return ptr[service.CartView](args, 0), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*service.CartView, error) {
	args := m.Called(ctx, userID, itemID)
	return ptr[service.CartView](args, 0), args.Error(1)
}

func (m *mockCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartService) Count(ctx context.Context, userID uuid.UUID) (*service.CartCount, error) {
	args := m.Called(ctx, userID)
	return ptr[service.CartCount](args, 0), args.Error(1)
}

type mockOrderService struct{ mock.Mock }

var _ service.IOrderService = (*mockOrderService)(nil)

func (m *mockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, arg service.CreateOrderParams) (*model.Order, error) {
	args := m.Called(ctx, userID, arg)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, status model.OrderStatus, paging db.Paging) (*service.PagedResult[model.Order], error) {
	args := m.Called(ctx, userID, status, paging)
	return ptr[service.PagedResult[model.Order]](args, 0), args.Error(1)
}

func (m *mockOrderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) GetUserOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*model.Order, error) {
	args := m.Called(ctx, userID, orderNumber)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID, reason)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) ListAllOrders(ctx context.Context, filter db.OrderFilter) (*service.PagedResult[model.Order], error) {
	args := m.Called(ctx, filter)
	return ptr[service.PagedResult[model.Order]](args, 0), args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, adminID, orderID uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error) {
	args := m.Called(ctx, adminID, orderID, status, reason)
	return ptr[model.Order](args, 0), args.Error(1)
}

func (m *mockOrderService) GetStatistics(ctx context.Context) (*service.OrderStatistics, error) {
	args := m.Called(ctx)
	return ptr[service.OrderStatistics](args, 0), args.Error(1)
}

type mockPromoService struct{ mock.Mock }

var _ service.IPromoService = (*mockPromoService)(nil)

func (m *mockPromoService) CreatePromoCode(ctx context.Context, arg service.PromoCodeParams) (*model.PromoCode, error) {
	args := m.Called(ctx, arg)
	return ptr[model.PromoCode](args, 0), args.Error(1)
}

func (m *mockPromoService) ListPromoCodes(ctx context.Context, paging db.Paging) (*service.PagedResult[model.PromoCode], error) {
	args := m.Called(ctx, paging)
	return ptr[service.PagedResult[model.PromoCode]](args, 0), args.Error(1)
}

func (m *mockPromoService) GetPromoCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	return ptr[model.PromoCode](args, 0), args.Error(1)
}

func (m *mockPromoService) UpdatePromoCode(ctx context.Context, code string, arg service.UpdatePromoCodeParams) (*model.PromoCode, error) {
	args := m.Called(ctx, code, arg)
	return ptr[model.PromoCode](args, 0), args.Error(1)
}

func (m *mockPromoService) DeactivatePromoCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	return ptr[model.PromoCode](args, 0), args.Error(1)
}

// denyLimiter 超過 allow 次之後拒絕
type denyLimiter struct {
	allow int
	calls map[string]int
}

func (l *denyLimiter) Allow(ctx context.Context, key string, cfg ratelimit.LimiterConfig) (ratelimit.Result, error) {
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[key]++
	remaining := l.allow - l.calls[key]
	if remaining < 0 {
		return ratelimit.Result{Allowed: false, Remaining: 0}, nil
	}
	return ratelimit.Result{Allowed: true, Remaining: remaining}, nil
}
