package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PromoRepo struct {
	db *DbDao
}

func NewPromoRepo(db *DbDao) *PromoRepo {
	return &PromoRepo{db: db}
}

func (s *PromoRepo) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(promo).Error, "create promo code")
}

func (s *PromoRepo) GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	if err := s.db.WithContext(ctx).First(&promo, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

// GetActivePromoCode 啟用中且未過期
func (s *PromoRepo) GetActivePromoCode(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := s.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		Where("(expires_at IS NULL OR expires_at >= ?)", now).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (s *PromoRepo) GetPromoCodeByOwner(ctx context.Context, ownerID uuid.UUID) (*model.PromoCode, error) {
	var promo model.PromoCode
	if err := s.db.WithContext(ctx).First(&promo, "owner_user_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (s *PromoRepo) ListPromoCodes(ctx context.Context, paging Paging) ([]model.PromoCode, int64, error) {
	var (
		promos []model.PromoCode
		total  int64
	)
	if err := s.db.WithContext(ctx).Model(&model.PromoCode{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.WithContext(ctx).Scopes(paginate(paging)).Order("created_at DESC").Find(&promos).Error
	return promos, total, err
}

func (s *PromoRepo) UpdatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	return errors.Wrap(s.db.WithContext(ctx).Save(promo).Error, "update promo code")
}

// IncrementPromoUses 使用次數+1, 已達上限時不更新並回傳false
func (s *PromoRepo) IncrementPromoUses(ctx context.Context, code string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.PromoCode{}).
		Where("code = ? AND (max_uses IS NULL OR current_uses < max_uses)", code).
		Update("current_uses", gorm.Expr("current_uses + ?", 1))
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "increment promo uses")
	}
	return res.RowsAffected == 1, nil
}

// IncrementReferralUses 推薦人的個人推薦碼使用次數+1
func (s *PromoRepo) IncrementReferralUses(ctx context.Context, ownerID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&model.PromoCode{}).
		Where("owner_user_id = ? AND is_active = ?", ownerID, true).
		Update("current_uses", gorm.Expr("current_uses + ?", 1)).Error
}
