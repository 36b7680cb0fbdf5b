package db

import (
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Paging struct {
	Page  int
	Limit int
}

// Normalize page從1開始, limit不超過 MaxPagingSize
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = constants.DefaultPaging
	}
	if p.Limit < 1 {
		p.Limit = constants.DefaultPagingSize
	}
	if p.Limit > constants.MaxPagingSize {
		p.Limit = constants.MaxPagingSize
	}
	return p
}

func (p Paging) Offset() int {
	return (p.Page - 1) * p.Limit
}

func paginate(p Paging) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p = p.Normalize()
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

type FoodItemFilter struct {
	CategoryID  *uuid.UUID
	IsAvailable *bool
	IsFeatured  *bool
	Search      string
	Paging
}

type OrderFilter struct {
	UserID    *uuid.UUID
	Status    model.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	Paging
}
