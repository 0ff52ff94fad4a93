package catalog

import (
	"strings"

	"github.com/respawnadega/storefront/internal/domain/shared"
)

// Category groups products for browsing. Subcategories are display labels
// used to build filter options, in display order.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Icon          string   `json:"icon,omitempty"`
	Color         string   `json:"color,omitempty"`
	Image         string   `json:"image,omitempty"`
	Featured      bool     `json:"featured"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// Validate checks the identity invariants of a category
func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category id cannot be empty")
	}
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return nil
}

// HasSubcategory reports whether name is one of the category's subcategories
func (c Category) HasSubcategory(name string) bool {
	for _, s := range c.Subcategories {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
