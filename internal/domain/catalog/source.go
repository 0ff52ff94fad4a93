package catalog

import "context"

// Source supplies products and categories from a content store or a static
// table. Key lookups return shared.ErrNotFound when nothing matches. Any
// other error means the source itself failed and callers are expected to
// fall back to the built-in catalog.
type Source interface {
	// ListProducts returns every product known to the source
	ListProducts(ctx context.Context) ([]Product, error)

	// ListCategories returns every category known to the source
	ListCategories(ctx context.Context) ([]Category, error)

	// GetProductByKey finds a product by its id or slug
	GetProductByKey(ctx context.Context, key string) (*Product, error)

	// GetCategoryByKey finds a category by its id or slug
	GetCategoryByKey(ctx context.Context, key string) (*Category, error)

	// ListProductsByCategory returns the products whose category matches categoryKey
	ListProductsByCategory(ctx context.Context, categoryKey string) ([]Product, error)

	// ListFeaturedProducts returns products flagged as featured
	ListFeaturedProducts(ctx context.Context) ([]Product, error)

	// ListFeaturedCategories returns categories flagged as featured
	ListFeaturedCategories(ctx context.Context) ([]Category, error)
}
