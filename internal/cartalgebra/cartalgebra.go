// Package cartalgebra is the cart mutation engine shared by the
// device-local store and the server-side transition rules. It computes the
// next cart state; persisting it is the caller's job.
package cartalgebra

// Cart maps an opaque catalog item id to its quantity. A line with a
// quantity <= 0 never exists: the three mutations below drop it instead.
type Cart map[string]int

// Clone returns an independent copy so callers can keep the previous state.
func Clone(cart Cart) Cart {
	next := make(Cart, len(cart))
	for id, qty := range cart {
		next[id] = qty
	}
	return next
}

// AddDelta folds delta into the current quantity. The delta may be
// negative; a resulting quantity <= 0 removes the line.
func AddDelta(cart Cart, itemID string, delta int) Cart {
	next := Clone(cart)
	qty := next[itemID] + delta
	if qty <= 0 {
		delete(next, itemID)
	} else {
		next[itemID] = qty
	}
	return next
}

// SetQuantity sets the line to exactly qty, removing it when qty <= 0.
func SetQuantity(cart Cart, itemID string, qty int) Cart {
	next := Clone(cart)
	if qty <= 0 {
		delete(next, itemID)
	} else {
		next[itemID] = qty
	}
	return next
}

// Remove deletes the line. Removing an absent line is not an error.
func Remove(cart Cart, itemID string) Cart {
	next := Clone(cart)
	delete(next, itemID)
	return next
}

// Count sums all quantities, for badge display.
func Count(cart Cart) int {
	total := 0
	for _, qty := range cart {
		total += qty
	}
	return total
}
