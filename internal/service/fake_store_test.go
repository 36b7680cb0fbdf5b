package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeData struct {
	users      map[uuid.UUID]model.User
	addresses  map[uuid.UUID]model.Address
	categories map[uuid.UUID]model.FoodCategory
	foodItems  map[uuid.UUID]model.FoodItem
	carts      map[uuid.UUID]model.Cart
	cartItems  map[uuid.UUID]model.CartItem
	promos     map[string]model.PromoCode
	orders     map[uuid.UUID]model.Order
	orderItems map[uuid.UUID][]model.OrderItem
}

func newFakeData() *fakeData {
	return &fakeData{
		users:      map[uuid.UUID]model.User{},
		addresses:  map[uuid.UUID]model.Address{},
		categories: map[uuid.UUID]model.FoodCategory{},
		foodItems:  map[uuid.UUID]model.FoodItem{},
		carts:      map[uuid.UUID]model.Cart{},
		cartItems:  map[uuid.UUID]model.CartItem{},
		promos:     map[string]model.PromoCode{},
		orders:     map[uuid.UUID]model.Order{},
		orderItems: map[uuid.UUID][]model.OrderItem{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	res := make(map[K]V, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}

func (d *fakeData) clone() *fakeData {
	return &fakeData{
		users:      cloneMap(d.users),
		addresses:  cloneMap(d.addresses),
		categories: cloneMap(d.categories),
		foodItems:  cloneMap(d.foodItems),
		carts:      cloneMap(d.carts),
		cartItems:  cloneMap(d.cartItems),
		promos:     cloneMap(d.promos),
		orders:     cloneMap(d.orders),
		orderItems: cloneMap(d.orderItems),
	}
}

// fakeStore in-memory UnifiedDB, ExecTx 失敗時還原快照
type fakeStore struct {
	mu    sync.Mutex
	data  *fakeData
	clock time.Time
	// 前 n 次 CreateOrder 回傳 order_number unique violation
	orderNumberConflicts int
	createOrderCalls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: newFakeData(), clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

var _ db.UnifiedDB = (*fakeStore)(nil)

// tick 每次建立資料時間往後1ms, 讓created_at排序穩定
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *fakeStore) stamp(b *model.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := s.tick()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (s *fakeStore) GetDB() *gorm.DB   { return nil }
func (s *fakeStore) InitMigrate() error { return nil }

func (s *fakeStore) ExecTx(ctx context.Context, fn func(tx db.UnifiedDB) error) error {
	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// User

func (s *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.users {
		if u.Email == user.Email {
			return uniqueViolation("idx_users_email")
		}
		if u.ReferralCode == user.ReferralCode {
			return uniqueViolation("idx_users_referral_code")
		}
	}
	s.stamp(&user.BaseModel)
	s.data.users[user.ID] = *user
	return nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *fakeStore) findUser(match func(u model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Email == email })
}

func (s *fakeStore) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.ReferralCode == code })
}

func (s *fakeStore) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = s.tick()
	s.data.users[user.ID] = *user
	return nil
}

func (s *fakeStore) HardDeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for aid, a := range s.data.addresses {
		if a.UserID == id {
			delete(s.data.addresses, aid)
		}
	}
	for code, p := range s.data.promos {
		if p.OwnerUserID != nil && *p.OwnerUserID == id {
			delete(s.data.promos, code)
		}
	}
	delete(s.data.users, id)
	return nil
}

func (s *fakeStore) CountReferredUsers(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, u := range s.data.users {
		if u.ReferredByID != nil && *u.ReferredByID == referrerID {
			count++
		}
	}
	return count, nil
}

// Address

func (s *fakeStore) CreateAddress(ctx context.Context, address *model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&address.BaseModel)
	s.data.addresses[address.ID] = *address
	return nil
}

func (s *fakeStore) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data.addresses[id]
	if !ok || a.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (s *fakeStore) ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []model.Address
	for _, a := range s.data.addresses {
		if a.UserID == userID && !a.IsDeleted {
			res = append(res, a)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].IsDefault != res[j].IsDefault {
			return res[i].IsDefault
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (s *fakeStore) UpdateAddress(ctx context.Context, address *model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	address.UpdatedAt = s.tick()
	s.data.addresses[address.ID] = *address
	return nil
}

func (s *fakeStore) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data.addresses[id]
	if !ok {
		return nil
	}
	a.IsDeleted = true
	a.DeletedAt = gorm.DeletedAt{Time: s.tick(), Valid: true}
	s.data.addresses[id] = a
	return nil
}

func (s *fakeStore) UnsetDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.data.addresses {
		if a.UserID == userID && id != exceptID && a.IsDefault {
			a.IsDefault = false
			s.data.addresses[id] = a
		}
	}
	return nil
}

// Catalog

func (s *fakeStore) CreateCategory(ctx context.Context, category *model.FoodCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return uniqueViolation("idx_food_categories_slug")
		}
	}
	s.stamp(&category.BaseModel)
	s.data.categories[category.ID] = *category
	return nil
}

func (s *fakeStore) GetCategoryByID(ctx context.Context, id uuid.UUID) (*model.FoodCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *fakeStore) GetCategoryBySlug(ctx context.Context, slug string) (*model.FoodCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ListCategories(ctx context.Context, activeOnly bool) ([]model.FoodCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []model.FoodCategory
	for _, c := range s.data.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DisplayOrder != res[j].DisplayOrder {
			return res[i].DisplayOrder < res[j].DisplayOrder
		}
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (s *fakeStore) UpdateCategory(ctx context.Context, category *model.FoodCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.data.categories {
		if id != category.ID && (c.Name == category.Name || c.Slug == category.Slug) {
			return uniqueViolation("idx_food_categories_slug")
		}
	}
	category.UpdatedAt = s.tick()
	s.data.categories[category.ID] = *category
	return nil
}

func (s *fakeStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.categories, id)
	return nil
}

func (s *fakeStore) CountFoodItemsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, f := range s.data.foodItems {
		if f.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.data.foodItems {
		if f.Slug == item.Slug {
			return uniqueViolation("idx_food_items_slug")
		}
	}
	s.stamp(&item.BaseModel)
	stored := *item
	stored.Category = nil
	s.data.foodItems[item.ID] = stored
	return nil
}

// withCategory 模擬 Preload("Category"), 呼叫端需持有鎖
func (s *fakeStore) withCategory(f model.FoodItem) *model.FoodItem {
	if c, ok := s.data.categories[f.CategoryID]; ok {
		f.Category = &c
	}
	return &f
}

func (s *fakeStore) GetFoodItemByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.data.foodItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.withCategory(f), nil
}

func (s *fakeStore) GetFoodItemBySlug(ctx context.Context, slug string) (*model.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.data.foodItems {
		if f.Slug == slug {
			return s.withCategory(f), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ListFoodItems(ctx context.Context, filter db.FoodItemFilter) ([]model.FoodItem, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(filter.Search)
	var matched []model.FoodItem
	for _, f := range s.data.foodItems {
		if filter.CategoryID != nil && f.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.IsAvailable != nil && f.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.IsFeatured != nil && f.IsFeatured != *filter.IsFeatured {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(f.Name), search) && !strings.Contains(strings.ToLower(f.Description), search) {
			continue
		}
		matched = append(matched, *s.withCategory(f))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsFeatured != matched[j].IsFeatured {
			return matched[i].IsFeatured
		}
		return matched[i].Name < matched[j].Name
	})
	return page(matched, filter.Paging), int64(len(matched)), nil
}

func page[T any](items []T, paging db.Paging) []T {
	paging = paging.Normalize()
	start := paging.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + paging.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (s *fakeStore) UpdateFoodItem(ctx context.Context, item *model.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.data.foodItems {
		if id != item.ID && f.Slug == item.Slug {
			return uniqueViolation("idx_food_items_slug")
		}
	}
	item.UpdatedAt = s.tick()
	stored := *item
	stored.Category = nil
	s.data.foodItems[item.ID] = stored
	return nil
}

// DeleteFoodItem 模擬 cart_items 的 ON DELETE CASCADE
func (s *fakeStore) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.foodItems, id)
	for cid, ci := range s.data.cartItems {
		if ci.FoodItemID == id {
			delete(s.data.cartItems, cid)
		}
	}
	return nil
}

// Cart

func (s *fakeStore) loadCart(c model.Cart) *model.Cart {
	var items []model.CartItem
	for _, ci := range s.data.cartItems {
		if ci.CartID != c.ID {
			continue
		}
		if f, ok := s.data.foodItems[ci.FoodItemID]; ok {
			ci.FoodItem = &f
		}
		items = append(items, ci)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	c.Items = items
	return &c
}

func (s *fakeStore) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.carts {
		if c.UserID == userID {
			return s.loadCart(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	if cart, err := s.GetCartByUserID(ctx, userID); err == nil {
		return cart, nil
	}
	s.mu.Lock()
	cart := model.Cart{UserID: userID}
	s.stamp(&cart.BaseModel)
	s.data.carts[cart.ID] = cart
	s.mu.Unlock()
	return s.GetCartByUserID(ctx, userID)
}

func (s *fakeStore) GetCartItemByID(ctx context.Context, id uuid.UUID) (*model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ci, ok := s.data.cartItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c, ok := s.data.carts[ci.CartID]; ok {
		ci.Cart = &c
	}
	if f, ok := s.data.foodItems[ci.FoodItemID]; ok {
		ci.FoodItem = &f
	}
	return &ci, nil
}

func sameSignature(a model.CartItem, cartID, foodItemID uuid.UUID, protein model.Protein, sidesKey string) bool {
	return a.CartID == cartID && a.FoodItemID == foodItemID && a.SelectedProtein == protein && a.SidesKey == sidesKey
}

func (s *fakeStore) FindCartItemBySignature(ctx context.Context, cartID, foodItemID uuid.UUID, protein model.Protein, sidesKey string) (*model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ci := range s.data.cartItems {
		if sameSignature(ci, cartID, foodItemID, protein, sidesKey) {
			return &ci, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ci := range s.data.cartItems {
		if sameSignature(ci, item.CartID, item.FoodItemID, item.SelectedProtein, item.SidesKey) {
			ci.Quantity += item.Quantity
			if item.CustomerMessage != "" {
				ci.CustomerMessage = item.CustomerMessage
			}
			ci.UpdatedAt = s.tick()
			s.data.cartItems[id] = ci
			return nil
		}
	}
	s.stamp(&item.BaseModel)
	stored := *item
	stored.Cart, stored.FoodItem = nil, nil
	s.data.cartItems[item.ID] = stored
	return nil
}

func (s *fakeStore) UpdateCartItem(ctx context.Context, item *model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ci := range s.data.cartItems {
		if id != item.ID && sameSignature(ci, item.CartID, item.FoodItemID, item.SelectedProtein, item.SidesKey) {
			return uniqueViolation("idx_cart_item_signature")
		}
	}
	item.UpdatedAt = s.tick()
	stored := *item
	stored.Cart, stored.FoodItem = nil, nil
	s.data.cartItems[item.ID] = stored
	return nil
}

func (s *fakeStore) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.cartItems, id)
	return nil
}

func (s *fakeStore) DeleteCartItems(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if ci, ok := s.data.cartItems[id]; ok && ci.CartID == cartID {
			delete(s.data.cartItems, id)
		}
	}
	return nil
}

func (s *fakeStore) ClearCartItems(ctx context.Context, cartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ci := range s.data.cartItems {
		if ci.CartID == cartID {
			delete(s.data.cartItems, id)
		}
	}
	return nil
}

// Promo

func (s *fakeStore) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.promos[promo.Code]; ok {
		return uniqueViolation("idx_promo_codes_code")
	}
	s.stamp(&promo.BaseModel)
	s.data.promos[promo.Code] = *promo
	return nil
}

func (s *fakeStore) GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.promos[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *fakeStore) GetActivePromoCode(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.promos[code]
	if !ok || !p.IsActive || p.IsExpired(now) {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *fakeStore) GetPromoCodeByOwner(ctx context.Context, ownerID uuid.UUID) (*model.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.promos {
		if p.OwnerUserID != nil && *p.OwnerUserID == ownerID {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ListPromoCodes(ctx context.Context, paging db.Paging) ([]model.PromoCode, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []model.PromoCode
	for _, p := range s.data.promos {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return page(res, paging), int64(len(res)), nil
}

func (s *fakeStore) UpdatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	promo.UpdatedAt = s.tick()
	s.data.promos[promo.Code] = *promo
	return nil
}

func (s *fakeStore) IncrementPromoUses(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.promos[code]
	if !ok || p.IsExhausted() {
		return false, nil
	}
	p.CurrentUses++
	s.data.promos[code] = p
	return true, nil
}

func (s *fakeStore) IncrementReferralUses(ctx context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, p := range s.data.promos {
		if p.OwnerUserID != nil && *p.OwnerUserID == ownerID && p.IsActive {
			p.CurrentUses++
			s.data.promos[code] = p
		}
	}
	return nil
}

// Order

func (s *fakeStore) CreateOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createOrderCalls++
	if s.createOrderCalls <= s.orderNumberConflicts {
		return uniqueViolation("idx_orders_order_number")
	}
	for _, o := range s.data.orders {
		if o.OrderNumber == order.OrderNumber {
			return uniqueViolation("idx_orders_order_number")
		}
	}
	s.stamp(&order.BaseModel)
	items := make([]model.OrderItem, len(order.Items))
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		s.stamp(&order.Items[i].BaseModel)
		items[i] = order.Items[i]
	}
	stored := *order
	stored.Items, stored.Address = nil, nil
	s.data.orders[order.ID] = stored
	s.data.orderItems[order.ID] = items
	return nil
}

// loadOrder 模擬 preloadOrderDetail, 軟刪除的地址仍會載入
func (s *fakeStore) loadOrder(o model.Order) *model.Order {
	o.Items = append([]model.OrderItem(nil), s.data.orderItems[o.ID]...)
	if a, ok := s.data.addresses[o.AddressID]; ok {
		o.Address = &a
	}
	return &o
}

func (s *fakeStore) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.loadOrder(o), nil
}

func (s *fakeStore) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.data.orders {
		if o.OrderNumber == orderNumber {
			return s.loadOrder(o), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ListOrders(ctx context.Context, filter db.OrderFilter) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []model.Order
	for _, o := range s.data.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && o.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && o.CreatedAt.After(*filter.EndDate) {
			continue
		}
		res = append(res, *s.loadOrder(o))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return page(res, filter.Paging), int64(len(res)), nil
}

func (s *fakeStore) UpdateOrderStatus(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = order.Status
	o.ConfirmedAt = order.ConfirmedAt
	o.CompletedAt = order.CompletedAt
	o.CancelledAt = order.CancelledAt
	o.CancelledBy = order.CancelledBy
	o.CancellationReason = order.CancellationReason
	o.UpdatedAt = s.tick()
	s.data.orders[order.ID] = o
	return nil
}

func (s *fakeStore) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, o := range s.data.orders {
		if status == "" || o.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, o := range s.data.orders {
		if !o.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) SumRevenue(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, o := range s.data.orders {
		if o.Status == status {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}
