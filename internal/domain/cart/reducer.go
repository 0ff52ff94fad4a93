package cart

import (
	"github.com/respawnadega/storefront/internal/domain/shared"
)

// Reducer applies actions to cart state. Each call returns a fresh state and
// leaves its input untouched, so a rejected action never partially applies.
type Reducer struct {
	// RequireInStock refuses to add products whose InStock flag is false
	RequireInStock bool
}

// NewReducer creates a reducer with the availability guard configured
func NewReducer(requireInStock bool) Reducer {
	return Reducer{RequireInStock: requireInStock}
}

// Reduce applies action to state and returns the resulting state
func (r Reducer) Reduce(state State, action Action) (State, error) {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		if a.Product.ID == "" {
			return state, shared.NewDomainError("INVALID_INPUT", "Product id cannot be empty")
		}
		if a.Quantity <= 0 {
			return state, shared.ErrInvalidQuantity
		}
		if r.RequireInStock && !a.Product.InStock {
			return state, shared.ErrProductUnavailable
		}
		if i := next.indexOf(a.Product.ID); i >= 0 {
			next.Items[i].Quantity += a.Quantity
		} else {
			next.Items = append(next.Items, Item{Product: a.Product.Clone(), Quantity: a.Quantity})
		}

	case RemoveItem:
		next.Items = removeLine(next.Items, a.ProductID)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			next.Items = removeLine(next.Items, a.ProductID)
			break
		}
		// Without a product record there is nothing to create.
		if i := next.indexOf(a.ProductID); i >= 0 {
			next.Items[i].Quantity = a.Quantity
		}

	case ClearCart:
		next.Items = nil

	case ToggleCart:
		next.IsOpen = !next.IsOpen

	case SetCustomerInfo:
		next.Customer = a.Info.Clone()

	case LoadCart:
		next.Items = normalizeItems(a.Items)
		next.Customer = a.Customer.Clone()

	default:
		return state, shared.NewDomainError("UNKNOWN_ACTION", "Unknown cart action")
	}

	if len(next.Items) == 0 {
		next.Items = nil
	}
	return next, nil
}

func removeLine(items []Item, productID string) []Item {
	out := items[:0]
	for _, it := range items {
		if it.Product.ID != productID {
			out = append(out, it)
		}
	}
	return out
}
