package order

import (
	"errors"
)

// Line is one distinct food item and its requested quantity within a cart.
// Prices are integer cents; formatting to a decimal amount happens only at
// the response boundary.
type Line struct {
	ItemID         int64
	Name           string
	UnitPriceCents int64
	Quantity       int
	PhotoURL       string
}

func NewLine(itemID int64, name string, unitPriceCents int64, quantity int, photoURL string) (Line, error) {
	if itemID <= 0 {
		return Line{}, errors.New("item id must be positive")
	}

	if name == "" {
		return Line{}, errors.New("item name cannot be empty")
	}

	if unitPriceCents < 0 {
		return Line{}, errors.New("unit price cannot be negative")
	}

	if quantity <= 0 {
		return Line{}, errors.New("quantity must be positive")
	}

	return Line{
		ItemID:         itemID,
		Name:           name,
		UnitPriceCents: unitPriceCents,
		Quantity:       quantity,
		PhotoURL:       photoURL,
	}, nil
}

// Snapshot is an immutable copy of cart state. Every mutation returns one,
// and checkout computes amounts from the snapshot taken at validation time,
// so cart edits during an in-flight checkout do not change what is charged.
type Snapshot struct {
	RestaurantID int64
	Lines        []Line
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s Snapshot) ItemCount() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// Cart holds the lines of a single user, bound to at most one restaurant.
// RestaurantID is zero exactly when the cart is empty. Cart itself is not
// safe for concurrent use; the session store serializes access.
type Cart struct {
	restaurantID int64
	lines        []Line
}

func NewCart() *Cart {
	return &Cart{}
}

// AddResult is the tagged outcome of Add. When Conflict is set, nothing was
// mutated: the pending line is carried back so the caller can ask the user
// for confirmation and retry with Replace.
type AddResult struct {
	Snapshot Snapshot
	Conflict bool
	Pending  Line
}

// Add inserts a line for the given restaurant. An empty cart binds to the
// restaurant; a matching restaurant merges quantity into an existing line for
// the same item or appends a new one; a different restaurant is a conflict
// and leaves the cart untouched.
func (c *Cart) Add(line Line, restaurantID int64) AddResult {
	if len(c.lines) > 0 && restaurantID != c.restaurantID {
		return AddResult{
			Snapshot: c.Snapshot(),
			Conflict: true,
			Pending:  line,
		}
	}

	c.restaurantID = restaurantID

	for i := range c.lines {
		if c.lines[i].ItemID == line.ItemID {
			c.lines[i].Quantity += line.Quantity
			return AddResult{Snapshot: c.Snapshot()}
		}
	}

	c.lines = append(c.lines, line)
	return AddResult{Snapshot: c.Snapshot()}
}

// Replace is the confirmed path for a conflicting add: discard every line,
// rebind to the new restaurant and keep only the new line.
func (c *Cart) Replace(line Line, restaurantID int64) Snapshot {
	c.lines = []Line{line}
	c.restaurantID = restaurantID
	return c.Snapshot()
}

// Remove deletes the line with the given item id. Removing an absent item is
// a no-op. Emptying the cart unbinds the restaurant.
func (c *Cart) Remove(itemID int64) Snapshot {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}

	if len(c.lines) == 0 {
		c.restaurantID = 0
	}

	return c.Snapshot()
}

func (c *Cart) Clear() Snapshot {
	c.lines = nil
	c.restaurantID = 0
	return c.Snapshot()
}

func (c *Cart) Snapshot() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)

	return Snapshot{
		RestaurantID: c.restaurantID,
		Lines:        lines,
	}
}

func (c *Cart) RestaurantID() int64 {
	return c.restaurantID
}
