package cart

import "github.com/respawnadega/storefront/internal/domain/catalog"

// ActionType names a cart transition
type ActionType string

const (
	ActionAddItem         ActionType = "ADD_TO_CART"
	ActionRemoveItem      ActionType = "REMOVE_FROM_CART"
	ActionUpdateQuantity  ActionType = "UPDATE_QUANTITY"
	ActionClearCart       ActionType = "CLEAR_CART"
	ActionToggleCart      ActionType = "TOGGLE_CART"
	ActionSetCustomerInfo ActionType = "SET_CUSTOMER_INFO"
	ActionLoadCart        ActionType = "LOAD_CART"
)

// Action is a single named transition applied by the Reducer
type Action interface {
	Type() ActionType
}

// AddItem adds Quantity units of Product, merging with an existing line
type AddItem struct {
	Product  catalog.Product
	Quantity int
}

// RemoveItem deletes the line for ProductID if present
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the quantity of an existing line. Non-positive
// quantities remove the line.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the items and keeps customer info
type ClearCart struct{}

// ToggleCart flips the visibility flag
type ToggleCart struct{}

// SetCustomerInfo replaces the customer info; nil clears it
type SetCustomerInfo struct {
	Info *CustomerInfo
}

// LoadCart replaces items and customer info in one transition
type LoadCart struct {
	Items    []Item
	Customer *CustomerInfo
}

func (AddItem) Type() ActionType         { return ActionAddItem }
func (RemoveItem) Type() ActionType      { return ActionRemoveItem }
func (UpdateQuantity) Type() ActionType  { return ActionUpdateQuantity }
func (ClearCart) Type() ActionType       { return ActionClearCart }
func (ToggleCart) Type() ActionType      { return ActionToggleCart }
func (SetCustomerInfo) Type() ActionType { return ActionSetCustomerInfo }
func (LoadCart) Type() ActionType        { return ActionLoadCart }

// ChangesPersistentState reports whether applying a of this type can alter
// items or customer info, the two records written to storage.
func ChangesPersistentState(a Action) bool {
	switch a.Type() {
	case ActionToggleCart, ActionLoadCart:
		return false
	default:
		return true
	}
}
