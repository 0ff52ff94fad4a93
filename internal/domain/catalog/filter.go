package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a filtered product view
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceAsc  SortKey = "price-asc"
	SortByPriceDesc SortKey = "price-desc"
	SortByRating    SortKey = "rating"
)

// CategoryAll is the sentinel meaning "no category filter"
const CategoryAll = "all"

// IsValid returns true for a recognized sort key
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByPriceAsc, SortByPriceDesc, SortByRating:
		return true
	}
	return false
}

// Normalize maps unknown or empty keys to SortByName
func (k SortKey) Normalize() SortKey {
	if k.IsValid() {
		return k
	}
	return SortByName
}

// PriceRange is an inclusive [Min, Max] price bound
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether price is within the range, bounds included
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Filter describes the user's current catalog query
type Filter struct {
	SearchTerm string
	Category   string
	PriceRange *PriceRange
	Sort       SortKey
	// MatchTags widens the search to brand and tags
	MatchTags bool
}

// Apply returns the products matching every active predicate of f, ordered
// by f.Sort. Unavailable products are always excluded. The input slice is
// left untouched and repeated calls with the same input yield the same
// order.
func Apply(products []Product, f Filter) []Product {
	m := newMatcher(f)

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if m.matches(p) {
			result = append(result, p)
		}
	}

	Sort(result, f.Sort)
	return result
}

// Sort orders products in place by key. Ties are broken by product id so the
// resulting order is total.
func Sort(products []Product, key SortKey) {
	var less func(a, b Product) int

	switch key.Normalize() {
	case SortByPriceAsc:
		less = func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortByPriceDesc:
		less = func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case SortByRating:
		less = func(a, b Product) int { return b.Rating.Cmp(a.Rating) }
	default:
		// Collator keeps internal buffers and is not safe for concurrent use.
		col := collate.New(language.BrazilianPortuguese)
		less = func(a, b Product) int { return col.CompareString(a.Name, b.Name) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if c := less(products[i], products[j]); c != 0 {
			return c < 0
		}
		return products[i].ID < products[j].ID
	})
}

type matcher struct {
	term      string
	category  string
	price     *PriceRange
	matchTags bool
	fold      cases.Caser
}

func newMatcher(f Filter) *matcher {
	m := &matcher{
		category:  strings.TrimSpace(f.Category),
		price:     f.PriceRange,
		matchTags: f.MatchTags,
		fold:      cases.Fold(),
	}
	m.term = m.fold.String(strings.TrimSpace(f.SearchTerm))
	if strings.EqualFold(m.category, CategoryAll) {
		m.category = ""
	}
	return m
}

func (m *matcher) matches(p Product) bool {
	if !p.InStock {
		return false
	}
	if m.category != "" && p.Category != m.category {
		return false
	}
	if m.price != nil && !m.price.Contains(p.Price) {
		return false
	}
	return m.matchesTerm(p)
}

func (m *matcher) matchesTerm(p Product) bool {
	if m.term == "" {
		return true
	}
	if m.contains(p.Name) || m.contains(p.Description) {
		return true
	}
	if !m.matchTags {
		return false
	}
	if m.contains(p.Brand) {
		return true
	}
	for _, tag := range p.Tags {
		if m.contains(tag) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.term)
}
