package commands

import (
	"context"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type AddToCartCommand struct {
	UserID   string
	ItemID   int64
	Quantity int

	// Confirm authorizes discarding a cart bound to a different restaurant.
	// Without it a conflicting add mutates nothing and the response carries
	// the conflict back for the UI to prompt on.
	Confirm bool
}

type AddToCartResponse struct {
	Snapshot order.Snapshot
	Conflict bool
	Pending  order.Line

	// PendingRestaurantID is the restaurant the pending line belongs to,
	// set only when Conflict is true.
	PendingRestaurantID int64
}

type AddToCartHandler struct {
	carts   ports.CartStore
	catalog ports.CatalogRepository
	log     *logger.Logger
}

func NewAddToCartHandler(
	carts ports.CartStore,
	catalog ports.CatalogRepository,
	log *logger.Logger,
) *AddToCartHandler {
	return &AddToCartHandler{
		carts:   carts,
		catalog: catalog,
		log:     log,
	}
}

func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*AddToCartResponse, error) {
	if cmd.Quantity <= 0 {
		return nil, errors.ErrInvalidQuantity
	}

	item, err := h.catalog.GetFoodItemByID(ctx, cmd.ItemID)
	if err != nil {
		if err == errors.ErrItemNotFound {
			return nil, err
		}
		h.log.Error("Failed to load food item", "error", err, "item_id", cmd.ItemID)
		return nil, err
	}

	line, err := order.NewLine(item.ID, item.Name, item.PriceCents, cmd.Quantity, item.PhotoURL)
	if err != nil {
		return nil, err
	}

	result := h.carts.Add(cmd.UserID, line, item.RestaurantID)
	if !result.Conflict {
		return &AddToCartResponse{Snapshot: result.Snapshot}, nil
	}

	if !cmd.Confirm {
		return &AddToCartResponse{
			Snapshot:            result.Snapshot,
			Conflict:            true,
			Pending:             result.Pending,
			PendingRestaurantID: item.RestaurantID,
		}, nil
	}

	snapshot := h.carts.Replace(cmd.UserID, line, item.RestaurantID)
	h.log.Info("Cart rebound to new restaurant",
		"user_id", cmd.UserID,
		"restaurant_id", item.RestaurantID,
		"item_id", item.ID,
	)

	return &AddToCartResponse{Snapshot: snapshot}, nil
}
