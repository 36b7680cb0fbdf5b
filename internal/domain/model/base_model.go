package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"null" json:"updated_at"`
}

// BeforeCreate 未指定ID時自動產生
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// 需要保留歷史關聯的資料使用軟刪除, ex: 已被訂單引用的地址
// is_deleted 與 deleted_at 由 repository 一次寫入
type SoftDeleteModel struct {
	BaseModel
	IsDeleted bool           `gorm:"not null;default:false" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
