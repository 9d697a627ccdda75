package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/catalog"
	domainErrors "github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/loyalty"
	"github.com/plateful/ordering-service/internal/infrastructure/http/middleware"
	"github.com/plateful/ordering-service/internal/infrastructure/memory"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type stubSessions struct {
	tokens map[string]string
}

func (s *stubSessions) GetSession(ctx context.Context, token string) (ports.Session, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return ports.Session{}, nil
	}
	return ports.Session{UserID: userID, Authenticated: true}, nil
}

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

type stubNamer struct {
	names map[int64]string
	err   error
}

func (s *stubNamer) GetRestaurantName(ctx context.Context, id int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.names[id], nil
}

type stubLedger struct {
	points  map[string]int64
	readErr error
}

func (s *stubLedger) Read(ctx context.Context, userID string, restaurantID int64) (*loyalty.Balance, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	points, ok := s.points[userID]
	if !ok {
		return nil, nil
	}
	return &loyalty.Balance{
		UserID:       userID,
		RestaurantID: restaurantID,
		Points:       points,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func (s *stubLedger) Upsert(ctx context.Context, userID string, restaurantID int64, points int64) error {
	s.points[userID] = points
	return nil
}

type cartFixture struct {
	handler *CartHandler
	carts   *memory.CartStore
	ledger  *stubLedger
	namer   *stubNamer
	auth    func(http.Handler) http.Handler
}

func newCartFixture() *cartFixture {
	log := logger.NewLogger()
	carts := memory.NewCartStore()
	cat := &stubCatalog{items: map[int64]*catalog.FoodItem{
		1: {ID: 1, RestaurantID: 10, Name: "Burger", PriceCents: 500},
		7: {ID: 7, RestaurantID: 20, Name: "Sushi", PriceCents: 1200},
	}}
	namer := &stubNamer{names: map[int64]string{10: "Burger Joint", 20: "Sushi Bar"}}
	ledger := &stubLedger{points: map[string]int64{}}
	sessions := &stubSessions{tokens: map[string]string{"tok-u1": "u1"}}

	return &cartFixture{
		handler: NewCartHandler(carts, cat, namer, ledger, log),
		carts:   carts,
		ledger:  ledger,
		namer:   namer,
		auth:    middleware.NewAuthMiddleware(sessions, log),
	}
}

func (f *cartFixture) do(t *testing.T, method, path, token, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.auth(h).ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_RequiresSession(t *testing.T) {
	f := newCartFixture()

	rec := f.do(t, http.MethodGet, "/cart", "", "", f.handler.HandleGetCart)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/cart", "bogus", "", f.handler.HandleGetCart)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandler_AddAndView(t *testing.T) {
	f := newCartFixture()
	f.ledger.points["u1"] = 2000

	rec := f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1, "quantity": 2}`, f.handler.HandleAddItem)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(10), resp.RestaurantID)
	assert.Equal(t, "Burger Joint", resp.RestaurantName)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "5.00", resp.Lines[0].UnitPrice)
	assert.Equal(t, "10.00", resp.Lines[0].LineTotal)
	assert.Equal(t, "10.00", resp.Subtotal)
	// 2000 points give a 2.00 discount against the 10.00 subtotal.
	assert.Equal(t, "2.00", resp.EffectiveDiscount)
	assert.Equal(t, "8.00", resp.Total)
	require.NotNil(t, resp.PointsBalance)
	assert.Equal(t, int64(2000), *resp.PointsBalance)
}

func TestCartHandler_DefaultQuantityIsOne(t *testing.T) {
	f := newCartFixture()

	rec := f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1}`, f.handler.HandleAddItem)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, f.carts.Snapshot("u1").ItemCount())
}

func TestCartHandler_ConflictReturns409WithContext(t *testing.T) {
	f := newCartFixture()

	rec := f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1, "quantity": 1}`, f.handler.HandleAddItem)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 7, "quantity": 1}`, f.handler.HandleAddItem)
	require.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Data CartConflictResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(10), envelope.Data.CurrentRestaurantID)
	assert.Equal(t, int64(20), envelope.Data.NewRestaurantID)
	assert.Equal(t, "Sushi", envelope.Data.PendingItem)

	// The cart did not change.
	assert.Equal(t, int64(10), f.carts.Snapshot("u1").RestaurantID)
}

func TestCartHandler_ConfirmedConflictReplacesCart(t *testing.T) {
	f := newCartFixture()

	f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1, "quantity": 1}`, f.handler.HandleAddItem)

	rec := f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 7, "quantity": 1, "confirm": true}`, f.handler.HandleAddItem)
	require.Equal(t, http.StatusOK, rec.Code)

	snapshot := f.carts.Snapshot("u1")
	assert.Equal(t, int64(20), snapshot.RestaurantID)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, int64(7), snapshot.Lines[0].ItemID)
}

func TestCartHandler_ViewDegradesWhenLedgerDown(t *testing.T) {
	f := newCartFixture()

	f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1, "quantity": 1}`, f.handler.HandleAddItem)

	f.ledger.readErr = assert.AnError

	rec := f.do(t, http.MethodGet, "/cart", "tok-u1", "", f.handler.HandleGetCart)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The cart still renders, without a balance and with no discount applied.
	assert.Nil(t, resp.PointsBalance)
	assert.Equal(t, "5.00", resp.Subtotal)
	assert.Equal(t, "0.00", resp.EffectiveDiscount)
	assert.Equal(t, "5.00", resp.Total)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	f := newCartFixture()

	f.do(t, http.MethodPost, "/cart/items", "tok-u1",
		`{"item_id": 1, "quantity": 1}`, f.handler.HandleAddItem)

	rec := f.do(t, http.MethodDelete, "/cart/items/1", "tok-u1", "", f.handler.HandleRemoveItem)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, f.carts.Snapshot("u1").IsEmpty())
}

func TestCartHandler_RemoveItemRejectsBadID(t *testing.T) {
	f := newCartFixture()

	rec := f.do(t, http.MethodDelete, "/cart/items/abc", "tok-u1", "", f.handler.HandleRemoveItem)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_InvalidBodyRejected(t *testing.T) {
	f := newCartFixture()

	rec := f.do(t, http.MethodPost, "/cart/items", "tok-u1", "{not json", f.handler.HandleAddItem)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
