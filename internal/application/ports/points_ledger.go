package ports

import (
	"context"

	"github.com/plateful/ordering-service/internal/domain/loyalty"
)

// PointsLedger is the remote per-user-per-restaurant balance store. It has no
// built-in versioning: Read followed by Upsert is a non-atomic
// read-modify-write, and two concurrent checkouts for the same pair can lose
// one side's point changes. That limitation is accepted by the checkout
// contract.
type PointsLedger interface {
	// Read returns the balance row, or nil when no row exists yet. Absence
	// is not an error; it means a zero balance.
	Read(ctx context.Context, userID string, restaurantID int64) (*loyalty.Balance, error)

	// Upsert writes the new balance, creating the row on first checkout.
	Upsert(ctx context.Context, userID string, restaurantID int64, points int64) error
}
