package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(address).Error, "create address")
}

func (s *AddressRepo) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := s.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// 預設地址排最前面
func (s *AddressRepo) ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at ASC").
		Find(&addresses).Error
	return addresses, err
}

func (s *AddressRepo) UpdateAddress(ctx context.Context, address *model.Address) error {
	return errors.Wrap(s.db.WithContext(ctx).Save(address).Error, "update address")
}

// DeleteAddress 軟刪除, 歷史訂單仍可關聯
func (s *AddressRepo) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": time.Now(),
		}).Error
	return errors.Wrap(err, "delete address")
}

// UnsetDefaultAddresses 取消使用者除了 exceptID 以外的預設地址
func (s *AddressRepo) UnsetDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}
