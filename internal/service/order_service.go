package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/pricing"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// IOrderEventPublisher 訂單事件, 由 producer.OrderProducer 實作
type IOrderEventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order) error
	OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) error
}

type IOrderService interface {
	// CreateOrder 將購物車轉為訂單
	// 建立訂單, 寫入品項快照, 促銷碼使用次數+1, 清空購物車, 全部在同一個transaction
	//
	// 錯誤:
	//   - CartEmptyCode 462: 購物車不存在或沒有品項
	//   - NotFoundCode 404: 地址不存在
	//   - ForbiddenCode 403: 地址不屬於該使用者
	//   - UnavailableCode 461: 有餐點暫停供應
	//   - InvalidPromoCode 463: 促銷碼不存在, 已停用或已過期
	//   - PromoExhaustedCode 464: 促銷碼已達使用上限
	//   - InternalErrorCode 500: 訂單編號重試次數用盡
	CreateOrder(ctx context.Context, userID uuid.UUID, arg CreateOrderParams) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, status model.OrderStatus, paging db.Paging) (*PagedResult[model.Order], error)
	// GetUserOrder 非本人訂單回傳 ForbiddenCode
	GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
	GetUserOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*model.Order, error)
	// CancelOrder 客戶取消, 僅 PENDING/CONFIRMED 可取消
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.Order, error)

	ListAllOrders(ctx context.Context, filter db.OrderFilter) (*PagedResult[model.Order], error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	// UpdateOrderStatus 管理者變更狀態
	//
	// 錯誤:
	//   - ValidationCode 460: 未知的狀態
	//   - InvalidStatusTransitionCode 465: 不允許的狀態轉換
	UpdateOrderStatus(ctx context.Context, adminID, orderID uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error)
	GetStatistics(ctx context.Context) (*OrderStatistics, error)
}

type CreateOrderParams struct {
	AddressID            uuid.UUID
	ContactNumber        string
	PaymentMethod        model.PaymentMethod
	PromoCode            string
	DeliveryTime         *time.Time
	DeliveryInstructions string
	CustomerInstructions string
}

type OrderStatistics struct {
	TotalOrders    int64                       `json:"total_orders"`
	OrdersByStatus map[model.OrderStatus]int64 `json:"orders_by_status"`
	TotalRevenue   decimal.Decimal             `json:"total_revenue"`
	TodayOrders    int64                       `json:"today_orders"`
}

var errOrderNumberTaken = errors.New("order number already taken")

type OrderService struct {
	store       db.UnifiedDB
	mailService IMailService
	publisher   IOrderEventPublisher
	rates       pricing.Rates
	now         clock
}

func NewOrderService(store db.UnifiedDB, mailService IMailService, publisher IOrderEventPublisher, rates pricing.Rates) *OrderService {
	if isNil(store) {
		panic("order service initialization failed: store cannot be nil")
	}
	if isNil(mailService) {
		panic("order service initialization failed: mailService cannot be nil")
	}
	if isNil(publisher) {
		panic("order service initialization failed: publisher cannot be nil")
	}
	return &OrderService{
		store:       store,
		mailService: mailService,
		publisher:   publisher,
		rates:       rates,
		now:         time.Now,
	}
}

var _ IOrderService = (*OrderService)(nil)

func (o *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, arg CreateOrderParams) (*model.Order, error) {
	cart, err := o.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.CartEmptyCode, "cart is empty")
		}
		return nil, apperr.Internal(err)
	}
	if len(cart.Items) == 0 {
		return nil, apperr.New(apperr.CartEmptyCode, "cart is empty")
	}

	address, err := o.store.GetAddressByID(ctx, arg.AddressID)
	if err != nil {
		return nil, dbError(err, "address not found")
	}
	if address.UserID != userID {
		return nil, apperr.New(apperr.ForbiddenCode, "address does not belong to user")
	}

	// 以目前的餐點狀態重新檢查, 購物車內的資料可能已過期
	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(cart.Items))
	lineIDs := make([]uuid.UUID, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		lineIDs = append(lineIDs, line.ID)
		food, err := o.store.GetFoodItemByID(ctx, line.FoodItemID)
		if err != nil {
			if db.IsNotFound(err) {
				return nil, apperr.New(apperr.UnavailableCode, "an item in your cart is no longer available")
			}
			return nil, apperr.Internal(err)
		}
		if !food.IsAvailable {
			return nil, apperr.Newf(apperr.UnavailableCode, "%s is currently unavailable", food.Name)
		}

		total := line.TotalPrice()
		subtotal = subtotal.Add(total)
		items = append(items, model.OrderItem{
			FoodItemID:         food.ID,
			FoodName:           food.Name,
			FoodImage:          food.ImageURL,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			TotalPrice:         total,
			SelectedProtein:    line.SelectedProtein,
			SelectedExtraSides: line.SelectedExtraSides,
			CustomerMessage:    line.CustomerMessage,
		})
	}

	discount := decimal.Zero
	var promoCode *string
	if code := strings.TrimSpace(arg.PromoCode); code != "" {
		promo, err := o.resolvePromo(ctx, userID, code)
		if err != nil {
			return nil, err
		}
		discount = promo.Discount(subtotal)
		promoCode = &promo.Code
	}

	totals := pricing.CalculateOrderTotals(subtotal, discount, o.rates)
	order := &model.Order{
		UserID:               userID,
		AddressID:            address.ID,
		ContactNumber:        strings.TrimSpace(arg.ContactNumber),
		PaymentMethod:        arg.PaymentMethod,
		DeliveryTime:         arg.DeliveryTime,
		DeliveryInstructions: arg.DeliveryInstructions,
		CustomerInstructions: arg.CustomerInstructions,
		PromoCode:            promoCode,
		Subtotal:             totals.Subtotal,
		DeliveryFee:          totals.DeliveryFee,
		ServiceFee:           totals.ServiceFee,
		Tax:                  totals.Tax,
		Discount:             totals.Discount,
		Total:                totals.Total,
		Status:               model.OrderStatusPending,
		PaymentStatus:        model.PaymentPending,
	}

	if err := o.persistOrder(ctx, cart.ID, lineIDs, order, items); err != nil {
		return nil, err
	}

	created, err := o.store.GetOrderByID(ctx, order.ID)
	if err != nil {
		return nil, dbError(err, "order not found")
	}
	log.Info().
		Str("order_id", created.ID.String()).
		Str("order_number", created.OrderNumber).
		Str("user_id", userID.String()).
		Str("total", created.Total.String()).
		Msg("order created")

	o.notifyOrderCreated(ctx, created)
	return created, nil
}

// resolvePromo 促銷碼必須啟用, 未過期, 未達上限, 且不可使用自己的推薦碼
func (o *OrderService) resolvePromo(ctx context.Context, userID uuid.UUID, code string) (*model.PromoCode, error) {
	promo, err := o.store.GetActivePromoCode(ctx, code, o.now())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.InvalidPromoCode, "invalid or expired promo code")
		}
		return nil, apperr.Internal(err)
	}
	if promo.OwnerUserID != nil && *promo.OwnerUserID == userID {
		return nil, apperr.New(apperr.InvalidPromoCode, "cannot use your own referral code")
	}
	if promo.IsExhausted() {
		return nil, apperr.New(apperr.PromoExhaustedCode, "promo code has reached its usage limit")
	}
	return promo, nil
}

// persistOrder 訂單編號重複時換一組編號重試整個transaction
// 只移除已下單的購物車品項 lineIDs
func (o *OrderService) persistOrder(ctx context.Context, cartID uuid.UUID, lineIDs []uuid.UUID, order *model.Order, items []model.OrderItem) error {
	for attempt := 0; attempt < constants.OrderNumberMaxAttempts; attempt++ {
		number, err := util.GenerateOrderNumber(constants.OrderNumberPrefix, o.now(), attempt)
		if err != nil {
			return apperr.Internal(err)
		}

		order.ID = uuid.Nil
		order.OrderNumber = number
		order.Items = make([]model.OrderItem, len(items))
		copy(order.Items, items)

		err = o.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
			if err := tx.CreateOrder(ctx, order); err != nil {
				if db.IsUniqueViolation(err) {
					return errOrderNumberTaken
				}
				return err
			}
			if order.PromoCode != nil {
				ok, err := tx.IncrementPromoUses(ctx, *order.PromoCode)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.New(apperr.PromoExhaustedCode, "promo code has reached its usage limit")
				}
			}
			return tx.DeleteCartItems(ctx, cartID, lineIDs)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, errOrderNumberTaken) {
			return dbError(err, "order not found")
		}
		log.Warn().Str("order_number", number).Int("attempt", attempt+1).Msg("order number collision, retrying")
	}
	return apperr.Internal(errors.New("could not allocate a unique order number"))
}

// commit後的通知失敗只記錄, 不影響訂單
func (o *OrderService) notifyOrderCreated(ctx context.Context, order *model.Order) {
	nctx, cancel := notifyContext(ctx)
	defer cancel()

	if err := o.publisher.OrderCreated(nctx, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("publish order created event failed")
	}

	user, err := o.store.GetUserByID(nctx, order.UserID)
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("load user for order confirmation failed")
		return
	}
	err = o.mailService.SendOrderConfirmation(nctx, OrderConfirmationData{
		Email: user.Email,
		Name:  user.FirstName,
		Order: order,
	})
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("send order confirmation failed")
	}
}

func (o *OrderService) notifyStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) {
	nctx, cancel := notifyContext(ctx)
	defer cancel()

	if err := o.publisher.OrderStatusChanged(nctx, order, previous); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("publish order status changed event failed")
	}
}

func validateStatusFilter(status model.OrderStatus) error {
	if status != "" && !status.IsValid() {
		return apperr.Newf(apperr.ValidationCode, "unknown order status %s", status)
	}
	return nil
}

func (o *OrderService) listOrders(ctx context.Context, filter db.OrderFilter) (*PagedResult[model.Order], error) {
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, err
	}
	filter.Paging = filter.Paging.Normalize()
	orders, total, err := o.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPagedResult(orders, total, filter.Paging), nil
}

func (o *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, status model.OrderStatus, paging db.Paging) (*PagedResult[model.Order], error) {
	return o.listOrders(ctx, db.OrderFilter{UserID: &userID, Status: status, Paging: paging})
}

func (o *OrderService) ListAllOrders(ctx context.Context, filter db.OrderFilter) (*PagedResult[model.Order], error) {
	return o.listOrders(ctx, filter)
}

func ownOrder(order *model.Order, userID uuid.UUID) error {
	if order.UserID != userID {
		return apperr.New(apperr.ForbiddenCode, "order does not belong to user")
	}
	return nil
}

func (o *OrderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := o.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := ownOrder(order, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) GetUserOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*model.Order, error) {
	order, err := o.store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, dbError(err, "order not found")
	}
	if err := ownOrder(order, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, dbError(err, "order not found")
	}
	return order, nil
}

func (o *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.Order, error) {
	order, err := o.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := order.CancelByCustomer(userID, strings.TrimSpace(reason), o.now()); err != nil {
		return nil, err
	}
	if err := o.store.UpdateOrderStatus(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}

	log.Info().Str("order_id", order.ID.String()).Str("user_id", userID.String()).Msg("order cancelled by customer")
	o.notifyStatusChanged(ctx, order, previous)
	return order, nil
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, adminID, orderID uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error) {
	if !status.IsValid() {
		return nil, apperr.Newf(apperr.ValidationCode, "unknown order status %s", status)
	}
	order, err := o.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := order.TransitionTo(status, adminID, strings.TrimSpace(reason), o.now()); err != nil {
		return nil, err
	}
	if err := o.store.UpdateOrderStatus(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("order status updated")
	o.notifyStatusChanged(ctx, order, previous)
	return order, nil
}

// GetStatistics 各項統計同時查詢
func (o *OrderService) GetStatistics(ctx context.Context) (*OrderStatistics, error) {
	now := o.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &OrderStatistics{OrdersByStatus: make(map[model.OrderStatus]int64, len(model.AllOrderStatuses))}
	counts := make([]int64, len(model.AllOrderStatuses))

	g, gctx := errgroup.WithContext(ctx)
	for i, status := range model.AllOrderStatuses {
		g.Go(func() error {
			count, err := o.store.CountOrdersByStatus(gctx, status)
			counts[i] = count
			return err
		})
	}
	g.Go(func() error {
		count, err := o.store.CountOrdersByStatus(gctx, "")
		stats.TotalOrders = count
		return err
	})
	g.Go(func() error {
		revenue, err := o.store.SumRevenue(gctx, model.OrderStatusCompleted)
		stats.TotalRevenue = revenue
		return err
	})
	g.Go(func() error {
		count, err := o.store.CountOrdersSince(gctx, startOfDay)
		stats.TodayOrders = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err)
	}

	for i, status := range model.AllOrderStatuses {
		stats.OrdersByStatus[status] = counts[i]
	}
	return stats, nil
}
