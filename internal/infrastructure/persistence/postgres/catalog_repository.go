package postgres

import (
	"context"
	"database/sql"

	"github.com/plateful/ordering-service/internal/domain/catalog"
	domainErrors "github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{
		db: conn.GetDB(),
	}
}

func (r *CatalogRepository) GetRestaurants(ctx context.Context, limit, offset int) ([]*catalog.Restaurant, error) {
	query := `
		SELECT id, name, address, photo_url, created_at
		FROM restaurants
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "restaurants", query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make([]*catalog.Restaurant, 0)
	for rows.Next() {
		var rest catalog.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.PhotoURL, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &rest)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func (r *CatalogRepository) GetRestaurantByID(ctx context.Context, id int64) (*catalog.Restaurant, error) {
	query := `
		SELECT id, name, address, photo_url, created_at
		FROM restaurants
		WHERE id = $1
	`

	var rest catalog.Restaurant
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "restaurants", query, id)
	err := row.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.PhotoURL, &rest.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrRestaurantNotFound
		}
		return nil, err
	}

	return &rest, nil
}

func (r *CatalogRepository) GetFoodItemByID(ctx context.Context, id int64) (*catalog.FoodItem, error) {
	query := `
		SELECT id, restaurant_id, name, description, price_cents, photo_url, created_at
		FROM food_items
		WHERE id = $1
	`

	var item catalog.FoodItem
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "food_items", query, id)
	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.PriceCents, &item.PhotoURL, &item.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *CatalogRepository) GetFoodItemsByRestaurantID(ctx context.Context, restaurantID int64, limit, offset int) ([]*catalog.FoodItem, error) {
	query := `
		SELECT id, restaurant_id, name, description, price_cents, photo_url, created_at
		FROM food_items
		WHERE restaurant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "food_items", query, restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*catalog.FoodItem, 0)
	for rows.Next() {
		var item catalog.FoodItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.PriceCents, &item.PhotoURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
