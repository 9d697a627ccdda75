package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/plateful/ordering-service/internal/application/commands"
	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/infrastructure/http/middleware"
	"github.com/plateful/ordering-service/internal/infrastructure/http/response"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type CartHandler struct {
	carts   ports.CartStore
	catalog ports.CatalogRepository
	namer   ports.RestaurantNamer
	ledger  ports.PointsLedger
	log     *logger.Logger
}

func NewCartHandler(
	carts ports.CartStore,
	catalog ports.CatalogRepository,
	namer ports.RestaurantNamer,
	ledger ports.PointsLedger,
	log *logger.Logger,
) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		namer:   namer,
		ledger:  ledger,
		log:     log,
	}
}

type CartLineResponse struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

type CartResponse struct {
	RestaurantID   int64              `json:"restaurant_id,omitempty"`
	RestaurantName string             `json:"restaurant_name,omitempty"`
	Lines          []CartLineResponse `json:"lines"`
	ItemCount      int                `json:"item_count"`
	Subtotal       string             `json:"subtotal"`

	// Balance fields degrade: when the ledger is unreachable the cart still
	// renders, PointsBalance is omitted and the discount preview shows zero.
	PointsBalance     *int64 `json:"points_balance,omitempty"`
	Discount          string `json:"discount"`
	EffectiveDiscount string `json:"effective_discount"`
	Total             string `json:"total"`
}

type CartConflictResponse struct {
	CurrentRestaurantID int64  `json:"current_restaurant_id"`
	NewRestaurantID     int64  `json:"new_restaurant_id"`
	PendingItem         string `json:"pending_item"`
	Message             string `json:"message"`
}

type addItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
	Confirm  bool  `json:"confirm"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if !session.Authenticated {
		response.WriteDomainError(w, errors.ErrNoSession)
		return
	}

	snapshot := h.carts.Snapshot(session.UserID)
	monitoring.RecordCartOperation("view")

	resp := h.buildCartResponse(r, session, snapshot)
	response.WriteSuccess(w, resp)
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if !session.Authenticated {
		response.WriteDomainError(w, errors.ErrNoSession)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"body": "invalid JSON body",
		})
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cmd := commands.AddToCartCommand{
		UserID:   session.UserID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Confirm:  req.Confirm,
	}

	handler := commands.NewAddToCartHandler(h.carts, h.catalog, h.log)
	resp, err := handler.Handle(r.Context(), cmd)
	if err != nil {
		h.log.Error("Add to cart failed",
			"error", err.Error(),
			"user_id", session.UserID,
			"item_id", req.ItemID,
		)
		response.WriteDomainError(w, err)
		return
	}

	if resp.Conflict {
		monitoring.RecordCartConflict()
		conflict := CartConflictResponse{
			CurrentRestaurantID: resp.Snapshot.RestaurantID,
			NewRestaurantID:     resp.PendingRestaurantID,
			PendingItem:         resp.Pending.Name,
			Message:             "Cart holds items from another restaurant. Confirm to start a new cart.",
		}
		statusCode, _ := response.MapDomainError(errors.ErrRestaurantConflict)
		response.WriteJSON(w, statusCode, response.DataResponse[CartConflictResponse]{
			BaseResponse: response.BaseResponse{Message: "Restaurant conflict"},
			Data:         conflict,
		})
		return
	}

	monitoring.RecordCartOperation("add")
	response.WriteSuccess(w, h.buildCartResponse(r, session, resp.Snapshot))
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if !session.Authenticated {
		response.WriteDomainError(w, errors.ErrNoSession)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	itemID, err := strconv.ParseInt(path, 10, 64)
	if err != nil || itemID <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"item_id": "item_id must be a positive integer",
		})
		return
	}

	snapshot := h.carts.Remove(session.UserID, itemID)
	monitoring.RecordCartOperation("remove")

	response.WriteSuccess(w, h.buildCartResponse(r, session, snapshot))
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if !session.Authenticated {
		response.WriteDomainError(w, errors.ErrNoSession)
		return
	}

	snapshot := h.carts.Clear(session.UserID)
	monitoring.RecordCartOperation("clear")

	response.WriteSuccess(w, h.buildCartResponse(r, session, snapshot))
}

func (h *CartHandler) buildCartResponse(r *http.Request, session ports.Session, snapshot order.Snapshot) CartResponse {
	lines := make([]CartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, CartLineResponse{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: order.FormatCents(line.UnitPriceCents),
			Quantity:  line.Quantity,
			LineTotal: order.FormatCents(line.UnitPriceCents * int64(line.Quantity)),
			PhotoURL:  line.PhotoURL,
		})
	}

	resp := CartResponse{
		RestaurantID: snapshot.RestaurantID,
		Lines:        lines,
		ItemCount:    snapshot.ItemCount(),
	}

	if snapshot.RestaurantID != 0 {
		name, err := h.namer.GetRestaurantName(r.Context(), snapshot.RestaurantID)
		if err != nil {
			h.log.Warn("Restaurant name lookup failed",
				"error", err.Error(),
				"restaurant_id", snapshot.RestaurantID,
			)
		}
		resp.RestaurantName = name
	}

	var points int64
	balanceKnown := false
	if snapshot.RestaurantID != 0 {
		balance, err := h.ledger.Read(r.Context(), session.UserID, snapshot.RestaurantID)
		switch {
		case err != nil:
			h.log.Warn("Points balance unavailable for cart view",
				"error", err.Error(),
				"user_id", session.UserID,
				"restaurant_id", snapshot.RestaurantID,
			)
		case balance != nil:
			points = balance.Points
			balanceKnown = true
		default:
			balanceKnown = true
		}
	}

	quote := order.NewQuote(snapshot, points)
	resp.Subtotal = order.FormatCents(quote.SubtotalCents)
	resp.Discount = order.FormatCents(quote.DiscountCents)
	resp.EffectiveDiscount = order.FormatCents(quote.EffectiveDiscountCents)
	resp.Total = order.FormatCents(quote.TotalCents)
	if balanceKnown {
		resp.PointsBalance = &points
	}

	return resp
}
