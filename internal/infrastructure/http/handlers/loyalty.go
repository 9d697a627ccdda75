package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/infrastructure/http/middleware"
	"github.com/plateful/ordering-service/internal/infrastructure/http/response"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type LoyaltyHandler struct {
	ledger ports.PointsLedger
	log    *logger.Logger
}

func NewLoyaltyHandler(ledger ports.PointsLedger, log *logger.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		ledger: ledger,
		log:    log,
	}
}

type BalanceResponse struct {
	RestaurantID      int64  `json:"restaurant_id"`
	Points            int64  `json:"points"`
	DiscountAvailable string `json:"discount_available"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

func (h *LoyaltyHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if !session.Authenticated {
		response.WriteDomainError(w, errors.ErrNoSession)
		return
	}

	restaurantID, err := strconv.ParseInt(r.URL.Query().Get("restaurant_id"), 10, 64)
	if err != nil || restaurantID <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"restaurant_id": "restaurant_id must be a positive integer",
		})
		return
	}

	balance, err := h.ledger.Read(r.Context(), session.UserID, restaurantID)
	if err != nil {
		h.log.Error("Failed to read points balance",
			"error", err.Error(),
			"user_id", session.UserID,
			"restaurant_id", restaurantID,
		)
		response.WriteDomainError(w, errors.ErrLedgerRead)
		return
	}

	resp := BalanceResponse{RestaurantID: restaurantID}
	if balance != nil {
		resp.Points = balance.Points
		resp.UpdatedAt = balance.UpdatedAt.Format(time.RFC3339)
	}
	resp.DiscountAvailable = order.FormatCents(order.DiscountCents(resp.Points))

	response.WriteSuccess(w, resp)
}
