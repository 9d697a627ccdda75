package ports

import (
	"github.com/plateful/ordering-service/internal/domain/order"
)

// CartStore holds the session-scoped carts, one per user, restricted to a
// single restaurant each. Mutations perform no I/O and every operation
// returns an immutable snapshot.
type CartStore interface {
	Add(userID string, line order.Line, restaurantID int64) order.AddResult
	Replace(userID string, line order.Line, restaurantID int64) order.Snapshot
	Remove(userID string, itemID int64) order.Snapshot
	Clear(userID string) order.Snapshot
	Snapshot(userID string) order.Snapshot
}
