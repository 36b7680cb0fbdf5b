package service

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type IUserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, arg UpdateProfileParams) (*model.User, error)
	// ChangePassword 成功後撤銷refresh token
	//
	// 錯誤:
	//   - UnauthenticatedCode 401: 目前密碼錯誤
	//   - ValidationCode 460: 新密碼強度不足
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetReferralInfo(ctx context.Context, userID uuid.UUID) (*ReferralInfo, error)

	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	// CreateAddress 第一筆地址自動成為預設
	CreateAddress(ctx context.Context, userID uuid.UUID, arg AddressParams) (*model.Address, error)
	// GetAddress 非本人的地址視為不存在
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, arg UpdateAddressParams) (*model.Address, error)
	// DeleteAddress 刪除預設地址時由最早建立的地址遞補
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error)
}

// UpdateProfileParams nil 代表不更新
type UpdateProfileParams struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

type AddressParams struct {
	Label     string
	Number    string
	Street    string
	City      string
	State     string
	IsDefault bool
}

type UpdateAddressParams struct {
	Label     *string
	Number    *string
	Street    *string
	City      *string
	State     *string
	IsDefault *bool
}

type ReferralInfo struct {
	ReferralCode  string `json:"referral_code"`
	ReferredUsers int64  `json:"referred_users"`
	CodeUses      int    `json:"code_uses"`
}

type UserService struct {
	store       db.UnifiedDB
	refreshRepo redis_repo.IRefreshTokenRepository
	now         clock
}

func NewUserService(store db.UnifiedDB, refreshRepo redis_repo.IRefreshTokenRepository) *UserService {
	if isNil(store) {
		panic("user service initialization failed: store cannot be nil")
	}
	if isNil(refreshRepo) {
		panic("user service initialization failed: refreshRepo cannot be nil")
	}
	return &UserService{store: store, refreshRepo: refreshRepo, now: time.Now}
}

var _ IUserService = (*UserService)(nil)

func (u *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := u.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, dbError(err, "user not found")
	}
	return user, nil
}

func (u *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, arg UpdateProfileParams) (*model.User, error) {
	user, err := u.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, dbError(err, "user not found")
	}

	if arg.FirstName != nil {
		user.FirstName = strings.TrimSpace(*arg.FirstName)
	}
	if arg.LastName != nil {
		user.LastName = strings.TrimSpace(*arg.LastName)
	}
	if arg.PhoneNumber != nil {
		phone := strings.TrimSpace(*arg.PhoneNumber)
		if phone == "" {
			user.PhoneNumber = nil
		} else {
			user.PhoneNumber = &phone
		}
	}

	if err := u.store.UpdateUser(ctx, user); err != nil {
		return nil, dbError(err, "user not found")
	}
	return user, nil
}

func (u *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := u.store.GetUserByID(ctx, userID)
	if err != nil {
		return dbError(err, "user not found")
	}
	if !util.CheckPassword(currentPassword, user.PasswordHash) {
		return apperr.New(apperr.UnauthenticatedCode, "current password is incorrect")
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return apperr.New(apperr.ValidationCode, err.Error())
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	user.PasswordHash = hash
	if err := u.store.UpdateUser(ctx, user); err != nil {
		return dbError(err, "user not found")
	}

	if err := u.refreshRepo.DeleteRefreshToken(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("revoke refresh token failed")
	}
	return nil
}

func (u *UserService) GetReferralInfo(ctx context.Context, userID uuid.UUID) (*ReferralInfo, error) {
	user, err := u.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, dbError(err, "user not found")
	}

	referred, err := u.store.CountReferredUsers(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	info := &ReferralInfo{ReferralCode: user.ReferralCode, ReferredUsers: referred}
	promo, err := u.store.GetPromoCodeByOwner(ctx, userID)
	switch {
	case err == nil:
		info.CodeUses = promo.CurrentUses
	case !db.IsNotFound(err):
		return nil, apperr.Internal(err)
	}
	return info, nil
}

func (u *UserService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	addresses, err := u.store.ListAddressesByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return addresses, nil
}

func (u *UserService) CreateAddress(ctx context.Context, userID uuid.UUID, arg AddressParams) (*model.Address, error) {
	address := &model.Address{
		UserID:    userID,
		Label:     strings.TrimSpace(arg.Label),
		Number:    strings.TrimSpace(arg.Number),
		Street:    strings.TrimSpace(arg.Street),
		City:      strings.TrimSpace(arg.City),
		State:     strings.TrimSpace(arg.State),
		IsDefault: arg.IsDefault,
	}

	err := u.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		existing, err := tx.ListAddressesByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			address.IsDefault = true
		}
		if err := tx.CreateAddress(ctx, address); err != nil {
			return err
		}
		if address.IsDefault {
			return tx.UnsetDefaultAddresses(ctx, userID, address.ID)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err, "address not found")
	}
	return address, nil
}

// ownAddress 地址不存在或不屬於該使用者都回傳NotFound
func ownAddress(ctx context.Context, store db.IAddressRepository, userID, addressID uuid.UUID) (*model.Address, error) {
	address, err := store.GetAddressByID(ctx, addressID)
	if err != nil {
		return nil, dbError(err, "address not found")
	}
	if address.UserID != userID {
		return nil, apperr.New(apperr.NotFoundCode, "address not found")
	}
	return address, nil
}

func (u *UserService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	return ownAddress(ctx, u.store, userID, addressID)
}

func (u *UserService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, arg UpdateAddressParams) (*model.Address, error) {
	var address *model.Address
	err := u.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		var err error
		address, err = ownAddress(ctx, tx, userID, addressID)
		if err != nil {
			return err
		}

		if arg.Label != nil {
			address.Label = strings.TrimSpace(*arg.Label)
		}
		if arg.Number != nil {
			address.Number = strings.TrimSpace(*arg.Number)
		}
		if arg.Street != nil {
			address.Street = strings.TrimSpace(*arg.Street)
		}
		if arg.City != nil {
			address.City = strings.TrimSpace(*arg.City)
		}
		if arg.State != nil {
			address.State = strings.TrimSpace(*arg.State)
		}
		// 預設地址不能直接取消, 只能由另一筆設為預設來取代
		if arg.IsDefault != nil && *arg.IsDefault {
			address.IsDefault = true
		}

		if err := tx.UpdateAddress(ctx, address); err != nil {
			return err
		}
		if address.IsDefault {
			return tx.UnsetDefaultAddresses(ctx, userID, address.ID)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err, "address not found")
	}
	return address, nil
}

func (u *UserService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	isDefault := true
	return u.UpdateAddress(ctx, userID, addressID, UpdateAddressParams{IsDefault: &isDefault})
}

func (u *UserService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	err := u.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		address, err := ownAddress(ctx, tx, userID, addressID)
		if err != nil {
			return err
		}
		if err := tx.DeleteAddress(ctx, address.ID); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}

		remaining, err := tx.ListAddressesByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		next := remaining[0]
		next.IsDefault = true
		return tx.UpdateAddress(ctx, &next)
	})
	return dbError(err, "address not found")
}
