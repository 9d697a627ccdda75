package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/infrastructure/http/response"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type CatalogHandler struct {
	catalog ports.CatalogRepository
	log     *logger.Logger
}

func NewCatalogHandler(catalog ports.CatalogRepository, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

type RestaurantResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type FoodItemResponse struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

func (h *CatalogHandler) HandleGetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := paginationParams(r, 50)

	restaurants, err := h.catalog.GetRestaurants(ctx, limit, offset)
	if err != nil {
		h.log.Error("Failed to list restaurants", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	responses := make([]RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		responses = append(responses, RestaurantResponse{
			ID:       restaurant.ID,
			Name:     restaurant.Name,
			Address:  restaurant.Address,
			PhotoURL: restaurant.PhotoURL,
		})
	}

	response.WriteSuccess(w, responses)
}

func (h *CatalogHandler) HandleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := restaurantIDFromPath(w, r)
	if !ok {
		return
	}

	restaurant, err := h.catalog.GetRestaurantByID(ctx, id)
	if err != nil {
		if err != errors.ErrRestaurantNotFound {
			h.log.Error("Failed to get restaurant", "error", err.Error(), "restaurant_id", id)
		}
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, RestaurantResponse{
		ID:       restaurant.ID,
		Name:     restaurant.Name,
		Address:  restaurant.Address,
		PhotoURL: restaurant.PhotoURL,
	})
}

func (h *CatalogHandler) HandleGetRestaurantItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := restaurantIDFromPath(w, r)
	if !ok {
		return
	}

	if _, err := h.catalog.GetRestaurantByID(ctx, id); err != nil {
		if err != errors.ErrRestaurantNotFound {
			h.log.Error("Failed to get restaurant", "error", err.Error(), "restaurant_id", id)
		}
		response.WriteDomainError(w, err)
		return
	}

	limit, offset := paginationParams(r, 100)

	items, err := h.catalog.GetFoodItemsByRestaurantID(ctx, id, limit, offset)
	if err != nil {
		h.log.Error("Failed to list food items", "error", err.Error(), "restaurant_id", id)
		response.WriteDomainError(w, err)
		return
	}

	responses := make([]FoodItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, FoodItemResponse{
			ID:           item.ID,
			RestaurantID: item.RestaurantID,
			Name:         item.Name,
			Description:  item.Description,
			Price:        order.FormatCents(item.PriceCents),
			PhotoURL:     item.PhotoURL,
		})
	}

	response.WriteSuccess(w, responses)
}

func restaurantIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	path := strings.TrimPrefix(r.URL.Path, "/restaurants/")
	parts := strings.Split(path, "/")

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"restaurant_id": "restaurant id must be a positive integer",
		})
		return 0, false
	}

	return id, true
}

func paginationParams(r *http.Request, defaultLimit int) (int, int) {
	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	return limit, offset
}
