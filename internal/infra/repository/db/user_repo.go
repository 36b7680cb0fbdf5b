package db

import (
	"context"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(user).Error, "create user")
}

func (s *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "referral_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return errors.Wrap(s.db.WithContext(ctx).Save(user).Error, "update user")
}

// HardDeleteUser 連同地址與個人推薦碼一併刪除, 用於覆蓋過期未驗證的註冊
func (s *UserRepo) HardDeleteUser(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Address{}).Error; err != nil {
		return errors.Wrap(err, "delete user addresses")
	}
	if err := tx.Where("owner_user_id = ?", id).Delete(&model.PromoCode{}).Error; err != nil {
		return errors.Wrap(err, "delete user referral code")
	}
	return errors.Wrap(tx.Delete(&model.User{}, "id = ?", id).Error, "delete user")
}

func (s *UserRepo) CountReferredUsers(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("referred_by_id = ?", referrerID).Count(&count).Error
	return count, err
}
