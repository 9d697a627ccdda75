package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/ordering-service/internal/domain/catalog"
	domainErrors "github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/infrastructure/memory"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type stubCatalog struct {
	items map[int64]*catalog.FoodItem
}

func (s *stubCatalog) GetRestaurants(ctx context.Context, limit, offset int) ([]*catalog.Restaurant, error) {
	return nil, nil
}

func (s *stubCatalog) GetRestaurantByID(ctx context.Context, id int64) (*catalog.Restaurant, error) {
	return nil, domainErrors.ErrRestaurantNotFound
}

func (s *stubCatalog) GetFoodItemByID(ctx context.Context, id int64) (*catalog.FoodItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}
	return item, nil
}

func (s *stubCatalog) GetFoodItemsByRestaurantID(ctx context.Context, restaurantID int64, limit, offset int) ([]*catalog.FoodItem, error) {
	return nil, nil
}

func newAddHandler() (*AddToCartHandler, *memory.CartStore) {
	carts := memory.NewCartStore()
	cat := &stubCatalog{items: map[int64]*catalog.FoodItem{
		1: {ID: 1, RestaurantID: 10, Name: "Burger", PriceCents: 500},
		2: {ID: 2, RestaurantID: 10, Name: "Fries", PriceCents: 250},
		7: {ID: 7, RestaurantID: 20, Name: "Sushi", PriceCents: 1200},
	}}
	return NewAddToCartHandler(carts, cat, logger.NewLogger()), carts
}

func TestAddToCart_AddsItem(t *testing.T) {
	handler, _ := newAddHandler()

	resp, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: 2,
	})
	require.NoError(t, err)

	assert.False(t, resp.Conflict)
	assert.Equal(t, int64(10), resp.Snapshot.RestaurantID)
	require.Len(t, resp.Snapshot.Lines, 1)
	assert.Equal(t, 2, resp.Snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(500), resp.Snapshot.Lines[0].UnitPriceCents)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: 0,
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)

	_, err = handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: -3,
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
}

func TestAddToCart_UnknownItem(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 42, Quantity: 1,
	})
	assert.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}

func TestAddToCart_ConflictWithoutConfirm(t *testing.T) {
	handler, carts := newAddHandler()

	_, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: 1,
	})
	require.NoError(t, err)

	resp, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 7, Quantity: 1,
	})
	require.NoError(t, err)

	assert.True(t, resp.Conflict)
	assert.Equal(t, int64(20), resp.PendingRestaurantID)
	assert.Equal(t, "Sushi", resp.Pending.Name)

	// The cart is untouched until the user confirms.
	snapshot := carts.Snapshot("u1")
	assert.Equal(t, int64(10), snapshot.RestaurantID)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, int64(1), snapshot.Lines[0].ItemID)
}

func TestAddToCart_ConflictWithConfirmReplacesCart(t *testing.T) {
	handler, carts := newAddHandler()

	_, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: 1,
	})
	require.NoError(t, err)
	_, err = handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 2, Quantity: 2,
	})
	require.NoError(t, err)

	resp, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 7, Quantity: 1, Confirm: true,
	})
	require.NoError(t, err)

	assert.False(t, resp.Conflict)
	assert.Equal(t, int64(20), resp.Snapshot.RestaurantID)
	require.Len(t, resp.Snapshot.Lines, 1)
	assert.Equal(t, int64(7), resp.Snapshot.Lines[0].ItemID)

	snapshot := carts.Snapshot("u1")
	assert.Equal(t, int64(20), snapshot.RestaurantID)
}

func TestAddToCart_ConfirmOnNonConflictBehavesAsPlainAdd(t *testing.T) {
	handler, _ := newAddHandler()

	resp, err := handler.Handle(context.Background(), AddToCartCommand{
		UserID: "u1", ItemID: 1, Quantity: 1, Confirm: true,
	})
	require.NoError(t, err)

	assert.False(t, resp.Conflict)
	require.Len(t, resp.Snapshot.Lines, 1)
}
