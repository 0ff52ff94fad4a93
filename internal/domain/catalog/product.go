package catalog

import (
	"strings"

	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category identifiers used by the storefront
const (
	CategoryBeer         = "cerveja"
	CategoryWine         = "vinho"
	CategorySpirits      = "destilado"
	CategoryNonAlcoholic = "sem-alcool"
)

// MaxRating is the upper bound of a product rating
var MaxRating = decimal.NewFromInt(5)

// Product is the canonical product shape every catalog source is adapted to.
// Values are snapshotted into carts, so Product carries no live references.
type Product struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice,omitempty"`
	Category       string           `json:"category"`
	Subcategory    string           `json:"subcategory,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Origin         string           `json:"origin,omitempty"`
	Volume         string           `json:"volume,omitempty"`
	AlcoholContent *decimal.Decimal `json:"alcoholContent,omitempty"` // percent ABV
	Image          string           `json:"image,omitempty"`
	InStock        bool             `json:"inStock"`
	Featured       bool             `json:"featured"`
	Rating         decimal.Decimal  `json:"rating"`
	ReviewCount    int              `json:"reviewCount"`
	Tags           []string         `json:"tags,omitempty"`
}

// Validate checks the numeric and identity invariants of a product
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product id cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be lower than price")
	}
	if p.Rating.IsNegative() || p.Rating.GreaterThan(MaxRating) {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if p.ReviewCount < 0 {
		return shared.NewDomainError("INVALID_RATING", "Review count cannot be negative")
	}
	if p.AlcoholContent != nil && (p.AlcoholContent.IsNegative() || p.AlcoholContent.GreaterThan(decimal.NewFromInt(100))) {
		return shared.NewDomainError("INVALID_ALCOHOL_CONTENT", "Alcohol content must be between 0 and 100")
	}
	return nil
}

// HasDiscount returns true when an original price above the current price is set
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent returns the discount against the original price, rounded
// to the nearest whole percent. Zero when there is no discount.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() || p.OriginalPrice.IsZero() {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// IsAlcoholic returns true if the product declares a positive alcohol content
func (p Product) IsAlcoholic() bool {
	return p.AlcoholContent != nil && p.AlcoholContent.IsPositive()
}

// Clone returns a deep copy so callers can snapshot a product safely
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.AlcoholContent != nil {
		v := *p.AlcoholContent
		c.AlcoholContent = &v
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}
