package cart

import (
	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a catalog product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,max=100"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// UpdateItemRequest sets the quantity of a cart line. Zero or negative
// quantities remove the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

// AddressRequest is the delivery address form
type AddressRequest struct {
	Street       string `json:"street" binding:"required,max=200"`
	Number       string `json:"number" binding:"required,max=20"`
	Complement   string `json:"complement" binding:"max=100"`
	Neighborhood string `json:"neighborhood" binding:"required,max=100"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,br_state"`
	ZipCode      string `json:"zip_code" binding:"required,cep"`
	Reference    string `json:"reference" binding:"max=200"`
}

// CustomerRequest is the customer form submitted before checkout
type CustomerRequest struct {
	Name    string         `json:"name" binding:"required,max=100"`
	Phone   string         `json:"phone" binding:"required,br_phone"`
	Address AddressRequest `json:"address" binding:"required"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID          string          `json:"product_id"`
	Name               string          `json:"name"`
	Image              string          `json:"image,omitempty"`
	Volume             string          `json:"volume,omitempty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	UnitPriceFormatted string          `json:"unit_price_formatted"`
	Quantity           int             `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	SubtotalFormatted  string          `json:"subtotal_formatted"`
	InStock            bool            `json:"in_stock"`
}

// AddressResponse represents a delivery address in API responses
type AddressResponse struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Reference    string `json:"reference,omitempty"`
	FullAddress  string `json:"full_address"`
}

// CustomerResponse represents customer info in API responses
type CustomerResponse struct {
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	PhoneFormatted string          `json:"phone_formatted"`
	Address        AddressResponse `json:"address"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	SessionID           string             `json:"session_id"`
	Items               []CartItemResponse `json:"items"`
	TotalItems          int                `json:"total_items"`
	TotalPrice          decimal.Decimal    `json:"total_price"`
	TotalPriceFormatted string             `json:"total_price_formatted"`
	IsOpen              bool               `json:"is_open"`
	Customer            *CustomerResponse  `json:"customer,omitempty"`
}

// ToCartResponse converts a cart state to CartResponse
func ToCartResponse(sessionID string, s cart.State) CartResponse {
	items := make([]CartItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = CartItemResponse{
			ProductID:          it.Product.ID,
			Name:               it.Product.Name,
			Image:              it.Product.Image,
			Volume:             it.Product.Volume,
			UnitPrice:          it.Product.Price,
			UnitPriceFormatted: valueobject.FormatBRL(it.Product.Price),
			Quantity:           it.Quantity,
			Subtotal:           it.Subtotal(),
			SubtotalFormatted:  it.SubtotalMoney().Format(),
			InStock:            it.Product.InStock,
		}
	}

	total := s.Total()
	resp := CartResponse{
		SessionID:           sessionID,
		Items:               items,
		TotalItems:          s.TotalItems(),
		TotalPrice:          total.Amount(),
		TotalPriceFormatted: total.Format(),
		IsOpen:              s.IsOpen,
	}
	if s.Customer != nil {
		c := ToCustomerResponse(*s.Customer)
		resp.Customer = &c
	}
	return resp
}

// ToCustomerResponse converts customer info to CustomerResponse
func ToCustomerResponse(c cart.CustomerInfo) CustomerResponse {
	a := c.Address
	return CustomerResponse{
		Name:           c.Name,
		Phone:          c.Phone,
		PhoneFormatted: valueobject.FormatBrazilianPhone(c.Phone),
		Address: AddressResponse{
			Street:       a.Street(),
			Number:       a.Number(),
			Complement:   a.Complement(),
			Neighborhood: a.Neighborhood(),
			City:         a.City(),
			State:        a.State(),
			ZipCode:      a.FormattedZipCode(),
			Reference:    a.Reference(),
			FullAddress:  a.FullAddress(),
		},
	}
}
