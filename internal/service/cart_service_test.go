package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *fakeStore
	service *CartService
	user    *model.User
	jollof  *model.FoodItem
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newFakeStore()
	suite.service = NewCartService(suite.store)
	suite.user = seedUser(suite.store, "cart@example.com", model.RoleCustomer)
	category := seedCategory(suite.store, "Rice Dishes")
	suite.jollof = seedFood(suite.store, category.ID, "Jollof Rice", 2500)
}

func (suite *CartServiceTestSuite) TestAddItemMergesSameSignature() {
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{
		FoodItemID:      suite.jollof.ID,
		Quantity:        1,
		Protein:         model.ProteinBeef,
		Sides:           []model.ExtraSide{model.SideColeslaw, model.SideFriedPlantain},
		CustomerMessage: "no onions",
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	// 2500 + 700 + 200 + 300
	assert.True(suite.T(), cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(3700)))

	cart, err = suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{
		FoodItemID: suite.jollof.ID,
		Quantity:   2,
		Protein:    model.ProteinBeef,
		Sides:      []model.ExtraSide{model.SideFriedPlantain, model.SideColeslaw, model.SideColeslaw},
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 3, cart.Items[0].Quantity)
	assert.Equal(suite.T(), "no onions", cart.Items[0].CustomerMessage)
	assert.Equal(suite.T(), 1, cart.Summary.ItemCount)
	assert.Equal(suite.T(), 3, cart.Summary.TotalQuantity)
	assert.True(suite.T(), cart.Summary.Subtotal.Equal(decimal.NewFromInt(11100)))

	cart, err = suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{
		FoodItemID: suite.jollof.ID,
		Quantity:   1,
		Protein:    model.ProteinGrilledFish,
	})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), cart.Items, 2)
}

func (suite *CartServiceTestSuite) TestAddItemRejections() {
	category := seedCategory(suite.store, "Drinks")
	plain := seedFood(suite.store, category.ID, "Zobo", 800)
	plain.AllowProteinChoice = false
	plain.AllowExtraSides = false
	plain.AllowCustomerMessage = false
	require.NoError(suite.T(), suite.store.UpdateFoodItem(suite.ctx, plain))

	testCases := []struct {
		name string
		arg  AddCartItemParams
		code apperr.ErrCode
	}{
		{"unknown food", AddCartItemParams{FoodItemID: uuid.New(), Quantity: 1}, apperr.NotFoundCode},
		{"zero quantity", AddCartItemParams{FoodItemID: plain.ID, Quantity: 0}, apperr.ValidationCode},
		{"protein not allowed", AddCartItemParams{FoodItemID: plain.ID, Quantity: 1, Protein: model.ProteinBeef}, apperr.ValidationCode},
		{"sides not allowed", AddCartItemParams{FoodItemID: plain.ID, Quantity: 1, Sides: []model.ExtraSide{model.SideColeslaw}}, apperr.ValidationCode},
		{"message not allowed", AddCartItemParams{FoodItemID: plain.ID, Quantity: 1, CustomerMessage: "cold please"}, apperr.ValidationCode},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.service.AddItem(suite.ctx, suite.user.ID, tc.arg)
			assert.Equal(suite.T(), tc.code, apperr.CodeOf(err))
		})
	}

	suite.jollof.IsAvailable = false
	require.NoError(suite.T(), suite.store.UpdateFoodItem(suite.ctx, suite.jollof))
	_, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 1})
	assert.True(suite.T(), apperr.Is(err, apperr.UnavailableCode))
}

func (suite *CartServiceTestSuite) TestUpdateItemRepricesOnlyWhenSelectionChanges() {
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 1, Protein: model.ProteinGrilledFish})
	require.NoError(suite.T(), err)
	lineID := cart.Items[0].ID

	// 基本價調整後, 只改數量不重新計價
	suite.jollof.BasePrice = decimal.NewFromInt(3000)
	require.NoError(suite.T(), suite.store.UpdateFoodItem(suite.ctx, suite.jollof))

	cart, err = suite.service.UpdateItem(suite.ctx, suite.user.ID, lineID, UpdateCartItemParams{Quantity: intPtr(2)})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(3000)))
	assert.Equal(suite.T(), 2, cart.Items[0].Quantity)

	beef := model.ProteinBeef
	cart, err = suite.service.UpdateItem(suite.ctx, suite.user.ID, lineID, UpdateCartItemParams{Protein: &beef})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(3700)))
	assert.True(suite.T(), cart.Items[0].TotalPrice.Equal(decimal.NewFromInt(7400)))
}

func (suite *CartServiceTestSuite) TestUpdateItemMergesIntoExistingSignature() {
	_, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 1, Protein: model.ProteinBeef})
	require.NoError(suite.T(), err)
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 2, Protein: model.ProteinGrilledFish})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 2)

	beef := model.ProteinBeef
	cart, err = suite.service.UpdateItem(suite.ctx, suite.user.ID, cart.Items[1].ID, UpdateCartItemParams{Protein: &beef})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 3, cart.Items[0].Quantity)
	assert.Equal(suite.T(), model.ProteinBeef, cart.Items[0].SelectedProtein)
}

func (suite *CartServiceTestSuite) TestOtherUsersLineIsNotFound() {
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 1})
	require.NoError(suite.T(), err)
	other := seedUser(suite.store, "other@example.com", model.RoleCustomer)

	_, err = suite.service.UpdateItem(suite.ctx, other.ID, cart.Items[0].ID, UpdateCartItemParams{Quantity: intPtr(5)})
	assert.True(suite.T(), apperr.Is(err, apperr.NotFoundCode))
	_, err = suite.service.RemoveItem(suite.ctx, other.ID, cart.Items[0].ID)
	assert.True(suite.T(), apperr.Is(err, apperr.NotFoundCode))
	_, err = suite.service.RemoveItem(suite.ctx, suite.user.ID, uuid.New())
	assert.True(suite.T(), apperr.Is(err, apperr.NotFoundCode))

	cart, err = suite.service.RemoveItem(suite.ctx, suite.user.ID, cart.Items[0].ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), cart.Items)
	assert.True(suite.T(), cart.Summary.Subtotal.IsZero())
}

func (suite *CartServiceTestSuite) TestCountAndClearWithoutCart() {
	count, err := suite.service.Count(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), &CartCount{}, count)
	require.NoError(suite.T(), suite.service.Clear(suite.ctx, suite.user.ID))

	_, err = suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 4})
	require.NoError(suite.T(), err)
	count, err = suite.service.Count(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count.ItemCount)
	assert.Equal(suite.T(), 4, count.TotalQuantity)

	require.NoError(suite.T(), suite.service.Clear(suite.ctx, suite.user.ID))
	cart, err := suite.service.GetCart(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), cart.Items)
}

func (suite *CartServiceTestSuite) TestUpdateItemUnavailableAfterAdd() {
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 1})
	require.NoError(suite.T(), err)
	lineID := cart.Items[0].ID

	suite.jollof.IsAvailable = false
	require.NoError(suite.T(), suite.store.UpdateFoodItem(suite.ctx, suite.jollof))

	_, err = suite.service.UpdateItem(suite.ctx, suite.user.ID, lineID, UpdateCartItemParams{Quantity: intPtr(4)})
	assert.True(suite.T(), apperr.Is(err, apperr.UnavailableCode))

	// 下架後數量不變
	cart, err = suite.service.GetCart(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 1, cart.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestUpdateItemRejectsDisallowedSelections() {
	cart, err := suite.service.AddItem(suite.ctx, suite.user.ID, AddCartItemParams{FoodItemID: suite.jollof.ID, Quantity: 2})
	require.NoError(suite.T(), err)
	lineID := cart.Items[0].ID

	suite.jollof.AllowProteinChoice = false
	suite.jollof.AllowExtraSides = false
	suite.jollof.AllowCustomerMessage = false
	require.NoError(suite.T(), suite.store.UpdateFoodItem(suite.ctx, suite.jollof))

	beef := model.ProteinBeef
	sides := []model.ExtraSide{model.SideColeslaw}
	testCases := []struct {
		name string
		arg  UpdateCartItemParams
	}{
		{"protein not allowed", UpdateCartItemParams{Protein: &beef}},
		{"sides not allowed", UpdateCartItemParams{Sides: &sides}},
		{"message not allowed", UpdateCartItemParams{CustomerMessage: strPtr("no pepper")}},
		{"quantity with protein", UpdateCartItemParams{Quantity: intPtr(3), Protein: &beef}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.service.UpdateItem(suite.ctx, suite.user.ID, lineID, tc.arg)
			assert.True(suite.T(), apperr.Is(err, apperr.ValidationCode))
		})
	}

	cart, err = suite.service.GetCart(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 2, cart.Items[0].Quantity)
	assert.Empty(suite.T(), cart.Items[0].SelectedProtein)
	assert.True(suite.T(), cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(2500)))
}
