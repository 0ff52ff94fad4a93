package cart

import (
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// State is the full cart state. IsOpen is a visibility flag for the cart
// drawer and is never persisted.
type State struct {
	Items    []Item
	IsOpen   bool
	Customer *CustomerInfo
}

// TotalItems returns the sum of quantities across all lines
func (s State) TotalItems() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity using snapshot prices
func (s State) TotalPrice() decimal.Decimal {
	return s.Total().Amount()
}

// Total is TotalPrice as Money
func (s State) Total() valueobject.Money {
	total := valueobject.ZeroBRL()
	for _, it := range s.Items {
		total = total.Add(it.SubtotalMoney())
	}
	return total
}

// QuantityOf returns the quantity on the line for productID, or 0
func (s State) QuantityOf(productID string) int {
	if i := s.indexOf(productID); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// IsEmpty returns true when the cart has no lines
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	return State{
		Items:    cloneItems(s.Items),
		IsOpen:   s.IsOpen,
		Customer: s.Customer.Clone(),
	}
}

func (s State) indexOf(productID string) int {
	for i, it := range s.Items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
