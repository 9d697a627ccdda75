package use_cases

import (
	"context"
	"sync"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/loyalty"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/pkg/generator"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

// CheckoutUseCase coordinates one checkout attempt: validate preconditions,
// read the points balance, compute the discounted amounts, write the new
// balance, then clear the cart. The ledger write is a plain read-modify-write
// with no version token; concurrent checkouts for the same (user, restaurant)
// can lose one side's points, which the contract accepts.
type CheckoutUseCase struct {
	carts  ports.CartStore
	ledger ports.PointsLedger
	refGen *generator.ReferenceGenerator
	log    *logger.Logger

	mu       sync.Mutex
	machines map[string]*order.CheckoutMachine
}

func NewCheckoutUseCase(
	carts ports.CartStore,
	ledger ports.PointsLedger,
	refGen *generator.ReferenceGenerator,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:    carts,
		ledger:   ledger,
		refGen:   refGen,
		log:      log,
		machines: make(map[string]*order.CheckoutMachine),
	}
}

func (uc *CheckoutUseCase) machine(userID string) *order.CheckoutMachine {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	m, ok := uc.machines[userID]
	if !ok {
		m = order.NewCheckoutMachine()
		uc.machines[userID] = m
	}
	return m
}

// State reports the current checkout state for a user. Users that never
// checked out are Idle.
func (uc *CheckoutUseCase) State(userID string) order.CheckoutState {
	return uc.machine(userID).State()
}

// Run executes a full checkout for the session's user. A second call while
// one is in flight fails with ErrCheckoutInProgress and leaves the first
// attempt undisturbed. On any failure the cart is left as it was so the user
// can retry; on success the cart is empty and the ledger holds the new
// balance.
func (uc *CheckoutUseCase) Run(ctx context.Context, session ports.Session) (*loyalty.CheckoutResult, error) {
	m := uc.machine(session.UserID)
	if err := m.Begin(); err != nil {
		return nil, err
	}

	result, err := uc.run(ctx, session, m)
	if err != nil {
		_ = m.Transition(order.CheckoutFailed)
		return nil, err
	}

	return result, nil
}

func (uc *CheckoutUseCase) run(ctx context.Context, session ports.Session, m *order.CheckoutMachine) (*loyalty.CheckoutResult, error) {
	if !session.Authenticated || session.UserID == "" {
		return nil, errors.ErrNoSession
	}

	// Snapshot now; the user may keep editing the cart while the ledger
	// round-trips, and those edits must not change what this attempt charges.
	snapshot := uc.carts.Snapshot(session.UserID)
	if snapshot.IsEmpty() || snapshot.RestaurantID == 0 {
		return nil, errors.ErrEmptyCart
	}
	if order.SubtotalCents(snapshot) == 0 {
		return nil, errors.ErrZeroTotal
	}

	_ = m.Transition(order.CheckoutReading)

	balance, err := uc.ledger.Read(ctx, session.UserID, snapshot.RestaurantID)
	if err != nil {
		uc.log.Error("Failed to read points balance",
			"error", err,
			"user_id", session.UserID,
			"restaurant_id", snapshot.RestaurantID,
		)
		return nil, errors.ErrLedgerRead
	}

	var points int64
	if balance != nil {
		points = balance.Points
	}

	_ = m.Transition(order.CheckoutComputing)

	quote := order.NewQuote(snapshot, points)
	if quote.TotalCents == 0 {
		return nil, errors.ErrZeroTotal
	}

	newBalance := points - quote.PointsConsumed + quote.PointsEarned

	_ = m.Transition(order.CheckoutWriting)

	if err := uc.ledger.Upsert(ctx, session.UserID, snapshot.RestaurantID, newBalance); err != nil {
		uc.log.Error("Failed to write points balance",
			"error", err,
			"user_id", session.UserID,
			"restaurant_id", snapshot.RestaurantID,
			"new_balance", newBalance,
		)
		return nil, errors.ErrLedgerWrite
	}

	_ = m.Transition(order.CheckoutFinalizing)

	uc.carts.Clear(session.UserID)

	// Best-effort refresh so the next cart view starts from ledger truth. A
	// failure here never reverts the completed checkout.
	if _, err := uc.ledger.Read(ctx, session.UserID, snapshot.RestaurantID); err != nil {
		uc.log.Warn("Balance refresh after checkout failed",
			"error", err,
			"user_id", session.UserID,
			"restaurant_id", snapshot.RestaurantID,
		)
	}

	_ = m.Transition(order.CheckoutSuccess)

	result := &loyalty.CheckoutResult{
		Reference:          uc.refGen.GenerateOrderReference(),
		PointsUsed:         quote.PointsConsumed,
		PointsEarned:       quote.PointsEarned,
		NewBalance:         newBalance,
		AmountChargedCents: quote.TotalCents,
	}

	uc.log.Info("Checkout completed",
		"user_id", session.UserID,
		"restaurant_id", snapshot.RestaurantID,
		"reference", result.Reference,
		"amount_charged_cents", result.AmountChargedCents,
		"points_used", result.PointsUsed,
		"points_earned", result.PointsEarned,
		"new_balance", result.NewBalance,
	)

	return result, nil
}
