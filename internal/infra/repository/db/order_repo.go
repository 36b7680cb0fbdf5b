package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// 地址可能已被軟刪除, 訂單仍需顯示
func preloadOrderDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC")
		}).
		Preload("Address", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

// CreateOrder 連同 order items 一起寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Omit("Address").Create(order).Error
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).Scopes(preloadOrderDetail).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).Scopes(preloadOrderDetail).First(&order, "order_number = ?", orderNumber).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders 新訂單在前
func (s *OrderRepo) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var (
		orders []model.Order
		total  int64
	)

	if err := s.db.WithContext(ctx).Model(&model.Order{}).Scopes(orderConditions(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Scopes(orderConditions(filter), paginate(filter.Paging), preloadOrderDetail).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func orderConditions(filter OrderFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.StartDate != nil {
			db = db.Where("created_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("created_at <= ?", *filter.EndDate)
		}
		return db
	}
}

// UpdateOrderStatus 只寫入狀態相關欄位
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, order *model.Order) error {
	err := s.db.WithContext(ctx).
		Model(order).
		Select("status", "confirmed_at", "completed_at", "cancelled_at", "cancelled_by", "cancellation_reason", "updated_at").
		Updates(order).Error
	return errors.Wrap(err, "update order status")
}

func (s *OrderRepo) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (s *OrderRepo) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// SumRevenue 指定狀態訂單的總金額加總
func (s *OrderRepo) SumRevenue(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("SUM(total)").
		Where("status = ?", status).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
