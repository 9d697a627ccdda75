package catalog

import (
	"time"
)

type Restaurant struct {
	ID        int64
	Name      string
	Address   string
	PhotoURL  string
	CreatedAt time.Time
}

type FoodItem struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	PriceCents   int64
	PhotoURL     string
	CreatedAt    time.Time
}
