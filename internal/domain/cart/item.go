package cart

import (
	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product snapshot taken when it was added plus a
// positive quantity. Later catalog price changes do not affect it.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns the snapshot price multiplied by the quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.SubtotalMoney().Amount()
}

// SubtotalMoney is Subtotal as Money
func (i Item) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(i.Product.Price).MultiplyByInt(int64(i.Quantity))
}

// ProductID returns the id of the product on this line
func (i Item) ProductID() string {
	return i.Product.ID
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return out
}

// normalizeItems merges lines sharing a product id, keeping the first
// line's position and snapshot, and drops lines with non-positive quantity.
func normalizeItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || it.Product.ID == "" {
			continue
		}
		if pos, ok := index[it.Product.ID]; ok {
			out[pos].Quantity += it.Quantity
			continue
		}
		index[it.Product.ID] = len(out)
		out = append(out, Item{Product: it.Product.Clone(), Quantity: it.Quantity})
	}
	return out
}
