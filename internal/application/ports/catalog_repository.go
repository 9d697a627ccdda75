package ports

import (
	"context"

	"github.com/plateful/ordering-service/internal/domain/catalog"
)

type CatalogRepository interface {
	GetRestaurants(ctx context.Context, limit, offset int) ([]*catalog.Restaurant, error)
	GetRestaurantByID(ctx context.Context, id int64) (*catalog.Restaurant, error)

	GetFoodItemByID(ctx context.Context, id int64) (*catalog.FoodItem, error)
	GetFoodItemsByRestaurantID(ctx context.Context, restaurantID int64, limit, offset int) ([]*catalog.FoodItem, error)
}

// RestaurantNamer is the display-only lookup used by the cart view. Cache
// implementations may serve stale names; correctness never depends on it.
type RestaurantNamer interface {
	GetRestaurantName(ctx context.Context, id int64) (string, error)
}
