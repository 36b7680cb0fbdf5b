package service

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type IPromoService interface {
	CreatePromoCode(ctx context.Context, arg PromoCodeParams) (*model.PromoCode, error)
	ListPromoCodes(ctx context.Context, paging db.Paging) (*PagedResult[model.PromoCode], error)
	GetPromoCode(ctx context.Context, code string) (*model.PromoCode, error)
	UpdatePromoCode(ctx context.Context, code string, arg UpdatePromoCodeParams) (*model.PromoCode, error)
	DeactivatePromoCode(ctx context.Context, code string) (*model.PromoCode, error)
}

type PromoCodeParams struct {
	Code          string
	DiscountType  model.DiscountType
	DiscountValue decimal.Decimal
	MaxUses       *int
	ExpiresAt     *time.Time
	IsActive      bool
}

// UpdatePromoCodeParams nil 代表不更新, ClearExpiry/ClearMaxUses 移除限制
type UpdatePromoCodeParams struct {
	IsActive      *bool
	ExpiresAt     *time.Time
	ClearExpiry   bool
	MaxUses       *int
	ClearMaxUses  bool
	DiscountValue *decimal.Decimal
}

type PromoService struct {
	store db.IPromoRepository
}

func NewPromoService(store db.IPromoRepository) *PromoService {
	if isNil(store) {
		panic("promo service initialization failed: store cannot be nil")
	}
	return &PromoService{store: store}
}

var _ IPromoService = (*PromoService)(nil)

func validateDiscount(discountType model.DiscountType, value decimal.Decimal) error {
	if !value.IsPositive() {
		return apperr.New(apperr.ValidationCode, "discount value must be positive")
	}
	switch discountType {
	case model.DiscountPercentage:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return apperr.New(apperr.ValidationCode, "percentage discount must be at most 100")
		}
	case model.DiscountFixed:
	default:
		return apperr.Newf(apperr.ValidationCode, "unknown discount type %s", discountType)
	}
	return nil
}

func (p *PromoService) CreatePromoCode(ctx context.Context, arg PromoCodeParams) (*model.PromoCode, error) {
	code := strings.ToUpper(strings.TrimSpace(arg.Code))
	if code == "" {
		return nil, apperr.New(apperr.ValidationCode, "code is required")
	}
	if err := validateDiscount(arg.DiscountType, arg.DiscountValue); err != nil {
		return nil, err
	}
	if arg.MaxUses != nil && *arg.MaxUses < 1 {
		return nil, apperr.New(apperr.ValidationCode, "max uses must be at least 1")
	}

	promo := &model.PromoCode{
		Code:          code,
		IsActive:      arg.IsActive,
		ExpiresAt:     arg.ExpiresAt,
		DiscountType:  arg.DiscountType,
		DiscountValue: arg.DiscountValue,
		MaxUses:       arg.MaxUses,
	}
	if err := p.store.CreatePromoCode(ctx, promo); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, "promo code already exists", err)
		}
		return nil, apperr.Internal(err)
	}
	log.Info().Str("code", promo.Code).Msg("promo code created")
	return promo, nil
}

func (p *PromoService) ListPromoCodes(ctx context.Context, paging db.Paging) (*PagedResult[model.PromoCode], error) {
	paging = paging.Normalize()
	promos, total, err := p.store.ListPromoCodes(ctx, paging)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPagedResult(promos, total, paging), nil
}

func (p *PromoService) GetPromoCode(ctx context.Context, code string) (*model.PromoCode, error) {
	promo, err := p.store.GetPromoCodeByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, dbError(err, "promo code not found")
	}
	return promo, nil
}

func (p *PromoService) UpdatePromoCode(ctx context.Context, code string, arg UpdatePromoCodeParams) (*model.PromoCode, error) {
	promo, err := p.GetPromoCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if arg.IsActive != nil {
		promo.IsActive = *arg.IsActive
	}
	if arg.ClearExpiry {
		promo.ExpiresAt = nil
	} else if arg.ExpiresAt != nil {
		promo.ExpiresAt = arg.ExpiresAt
	}
	if arg.ClearMaxUses {
		promo.MaxUses = nil
	} else if arg.MaxUses != nil {
		if *arg.MaxUses < promo.CurrentUses {
			return nil, apperr.Newf(apperr.ValidationCode, "max uses cannot be lower than current uses (%d)", promo.CurrentUses)
		}
		promo.MaxUses = arg.MaxUses
	}
	if arg.DiscountValue != nil {
		if err := validateDiscount(promo.DiscountType, *arg.DiscountValue); err != nil {
			return nil, err
		}
		promo.DiscountValue = *arg.DiscountValue
	}

	if err := p.store.UpdatePromoCode(ctx, promo); err != nil {
		return nil, dbError(err, "promo code not found")
	}
	return promo, nil
}

func (p *PromoService) DeactivatePromoCode(ctx context.Context, code string) (*model.PromoCode, error) {
	inactive := false
	promo, err := p.UpdatePromoCode(ctx, code, UpdatePromoCodeParams{IsActive: &inactive})
	if err != nil {
		return nil, err
	}
	log.Info().Str("code", promo.Code).Msg("promo code deactivated")
	return promo, nil
}

