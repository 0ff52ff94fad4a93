package catalog

import (
	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BrowseQuery is the catalog page query
type BrowseQuery struct {
	Search    string `form:"search" binding:"max=100"`
	Category  string `form:"category" binding:"max=50"`
	MinPrice  string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice  string `form:"max_price" binding:"omitempty,numeric"`
	Sort      string `form:"sort" binding:"omitempty,oneof=name price-asc price-desc rating"`
	MatchTags bool   `form:"match_tags"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Description            string           `json:"description"`
	Price                  decimal.Decimal  `json:"price"`
	PriceFormatted         string           `json:"price_formatted"`
	OriginalPrice          *decimal.Decimal `json:"original_price,omitempty"`
	OriginalPriceFormatted string           `json:"original_price_formatted,omitempty"`
	DiscountPercent        int              `json:"discount_percent,omitempty"`
	Category               string           `json:"category"`
	Subcategory            string           `json:"subcategory,omitempty"`
	Brand                  string           `json:"brand,omitempty"`
	Origin                 string           `json:"origin,omitempty"`
	Volume                 string           `json:"volume,omitempty"`
	AlcoholContent         *decimal.Decimal `json:"alcohol_content,omitempty"`
	AlcoholContentLabel    string           `json:"alcohol_content_label,omitempty"`
	Alcoholic              bool             `json:"alcoholic"`
	Image                  string           `json:"image,omitempty"`
	InStock                bool             `json:"in_stock"`
	Featured               bool             `json:"featured"`
	Rating                 decimal.Decimal  `json:"rating"`
	ReviewCount            int              `json:"review_count"`
	Tags                   []string         `json:"tags,omitempty"`
}

// BrowseResponse is a filtered, ordered product view
type BrowseResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Sort     string            `json:"sort"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Icon          string   `json:"icon,omitempty"`
	Color         string   `json:"color,omitempty"`
	Image         string   `json:"image,omitempty"`
	Featured      bool     `json:"featured"`
	Subcategories []string `json:"subcategories"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		PriceFormatted: valueobject.FormatBRL(p.Price),
		OriginalPrice:  p.OriginalPrice,
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		Brand:          p.Brand,
		Origin:         p.Origin,
		Volume:         p.Volume,
		AlcoholContent: p.AlcoholContent,
		Alcoholic:      p.IsAlcoholic(),
		Image:          p.Image,
		InStock:        p.InStock,
		Featured:       p.Featured,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Tags:           p.Tags,
	}
	if p.HasDiscount() {
		resp.OriginalPriceFormatted = valueobject.FormatBRL(*p.OriginalPrice)
		resp.DiscountPercent = p.DiscountPercent()
	}
	if p.AlcoholContent != nil {
		resp.AlcoholContentLabel = valueobject.FormatDecimalBR(*p.AlcoholContent, 1) + "%"
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c catalog.Category) CategoryResponse {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Icon:          c.Icon,
		Color:         c.Color,
		Image:         c.Image,
		Featured:      c.Featured,
		Subcategories: subs,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out
}
