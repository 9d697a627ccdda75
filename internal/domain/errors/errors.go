package errors

import (
	"errors"
)

var (
	ErrNoSession       = errors.New("no authenticated session")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrZeroTotal       = errors.New("order total is zero")
	ErrInvalidQuantity = errors.New("quantity must be positive")

	ErrItemNotFound       = errors.New("food item not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrRestaurantConflict = errors.New("cart holds items from another restaurant")

	ErrLedgerRead  = errors.New("failed to read points balance")
	ErrLedgerWrite = errors.New("failed to update points balance")

	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
