package loyalty

import (
	"time"
)

// Balance is the remote ledger row for one (user, restaurant) pair. The
// ledger is authoritative; nothing here is cached past a single checkout
// attempt.
type Balance struct {
	UserID       string
	RestaurantID int64
	Points       int64
	UpdatedAt    time.Time
}

// CheckoutResult is the transient outcome of one successful checkout. It is
// returned to the caller and never persisted locally.
type CheckoutResult struct {
	Reference          string
	PointsUsed         int64
	PointsEarned       int64
	NewBalance         int64
	AmountChargedCents int64
}
