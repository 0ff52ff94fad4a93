package checkout

import (
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
)

// BusinessInfo identifies the shop receiving orders
type BusinessInfo struct {
	Name           string
	WhatsAppNumber string // country code + area code + number, digits only
	Address        string
	Hours          string
}

// DefaultBusinessInfo returns the storefront's own contact details
func DefaultBusinessInfo() BusinessInfo {
	return BusinessInfo{
		Name:           "Respawn Adega",
		WhatsAppNumber: "5511956792908",
		Address:        "Rua das Bebidas, 123 - Centro, São Paulo - SP",
		Hours:          "Segunda a Sexta: 8h às 22h | Sábado: 8h às 20h",
	}
}

// Validate checks that the business can receive WhatsApp orders
func (b BusinessInfo) Validate() error {
	if b.Name == "" {
		return shared.NewDomainError("INVALID_BUSINESS", "Business name cannot be empty")
	}
	if !valueobject.IsValidWhatsAppNumber(b.WhatsAppNumber) {
		return shared.NewDomainError("INVALID_BUSINESS", "Business WhatsApp number must have 10 to 15 digits")
	}
	return nil
}
