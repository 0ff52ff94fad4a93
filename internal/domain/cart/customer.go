package cart

import (
	"encoding/json"
	"strings"

	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
)

// CustomerInfo holds the delivery details submitted through the address
// form. It is replaced wholesale, never merged field by field.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address valueobject.DeliveryAddress
}

// NewCustomerInfo validates and creates a CustomerInfo
func NewCustomerInfo(name, phone string, address valueobject.DeliveryAddress) (*CustomerInfo, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Nome é obrigatório")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Telefone é obrigatório")
	}
	if !valueobject.IsValidBrazilianPhone(phone) {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Telefone deve ter pelo menos 10 dígitos")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Endereço é obrigatório")
	}

	return &CustomerInfo{
		Name:    name,
		Phone:   phone,
		Address: address,
	}, nil
}

// Clone returns a copy of the customer info; nil stays nil
func (c *CustomerInfo) Clone() *CustomerInfo {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

type customerJSON struct {
	Name    string                      `json:"name"`
	Phone   string                      `json:"phone"`
	Address valueobject.DeliveryAddress `json:"address"`
}

// MarshalJSON implements json.Marshaler
func (c CustomerInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(customerJSON(c))
}

// UnmarshalJSON implements json.Unmarshaler, revalidating the record
func (c *CustomerInfo) UnmarshalJSON(data []byte) error {
	var v customerJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	info, err := NewCustomerInfo(v.Name, v.Phone, v.Address)
	if err != nil {
		return err
	}
	*c = *info
	return nil
}
