package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	util.BcryptCost = bcrypt.MinCost
}

type mockMailService struct {
	mock.Mock
}

func (m *mockMailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockMailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockMailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	return m.Called(ctx, data).Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) OrderCreated(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockEventPublisher) OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) error {
	return m.Called(ctx, order, previous).Error(0)
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

func seedUser(s *fakeStore, email string, role model.UserRole) *model.User {
	hash, err := util.HashPassword("Passw0rd!")
	if err != nil {
		panic(err)
	}
	user := &model.User{
		Email:           email,
		PasswordHash:    hash,
		FirstName:       "Ada",
		LastName:        "Obi",
		Role:            role,
		IsEmailVerified: true,
		ReferralCode:    "REF" + uuid.NewString()[:8],
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func seedAddress(s *fakeStore, userID uuid.UUID) *model.Address {
	address := &model.Address{UserID: userID, Number: "12", Street: "Allen Ave", City: "Ikeja", State: "Lagos", IsDefault: true}
	if err := s.CreateAddress(context.Background(), address); err != nil {
		panic(err)
	}
	return address
}

func seedCategory(s *fakeStore, name string) *model.FoodCategory {
	category := &model.FoodCategory{Name: name, Slug: util.GenerateSlug(name), IsActive: true}
	if err := s.CreateCategory(context.Background(), category); err != nil {
		panic(err)
	}
	return category
}

// seedFood 預設允許所有選項
func seedFood(s *fakeStore, categoryID uuid.UUID, name string, basePrice int64) *model.FoodItem {
	item := &model.FoodItem{
		CategoryID:           categoryID,
		Name:                 name,
		Slug:                 util.GenerateSlug(name),
		BasePrice:            decimal.NewFromInt(basePrice),
		IsAvailable:          true,
		AllowProteinChoice:   true,
		AllowExtraSides:      true,
		AllowCustomerMessage: true,
	}
	if err := s.CreateFoodItem(context.Background(), item); err != nil {
		panic(err)
	}
	return item
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
