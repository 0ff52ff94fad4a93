package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service serves catalog queries from a primary source and falls back to
// the built-in catalog whenever the primary source fails. Source failures
// are logged and never returned to callers.
type Service struct {
	primary  catalog.Source
	fallback catalog.Source
	logger   *zap.Logger
	metrics  *telemetry.Metrics
}

// NewService creates a new catalog Service. primary may be nil, in which
// case fallback serves every query directly.
func NewService(primary, fallback catalog.Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if primary == nil {
		primary, fallback = fallback, nil
	}
	return &Service{
		primary:  primary,
		fallback: fallback,
		logger:   logger.Named("catalog"),
	}
}

// SetMetrics sets the business metrics recorder
func (s *Service) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// ListProducts returns every product
func (s *Service) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products(ctx, "ListProducts", func(src catalog.Source) ([]catalog.Product, error) {
		return src.ListProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListFeaturedProducts returns products flagged as featured
func (s *Service) ListFeaturedProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products(ctx, "ListFeaturedProducts", func(src catalog.Source) ([]catalog.Product, error) {
		return src.ListFeaturedProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListProductsByCategory returns the products of a category
func (s *Service) ListProductsByCategory(ctx context.Context, categoryKey string) ([]ProductResponse, error) {
	products, err := s.products(ctx, "ListProductsByCategory", func(src catalog.Source) ([]catalog.Product, error) {
		return src.ListProductsByCategory(ctx, categoryKey)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListCategories returns every category
func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories(ctx, "ListCategories", func(src catalog.Source) ([]catalog.Category, error) {
		return src.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// ListFeaturedCategories returns categories flagged as featured
func (s *Service) ListFeaturedCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories(ctx, "ListFeaturedCategories", func(src catalog.Source) ([]catalog.Category, error) {
		return src.ListFeaturedCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// GetProduct returns a single product by id or slug
func (s *Service) GetProduct(ctx context.Context, key string) (*ProductResponse, error) {
	p, err := s.FindProduct(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*p)
	return &resp, nil
}

// FindProduct returns the canonical product for key. It is what the cart
// snapshots when an item is added.
func (s *Service) FindProduct(ctx context.Context, key string) (*catalog.Product, error) {
	p, err := s.primary.GetProductByKey(ctx, key)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, shared.ErrNotFound) || s.fallback == nil {
		return nil, err
	}

	s.logFallback(ctx, "GetProductByKey", err, zap.String("key", key))
	return s.fallback.GetProductByKey(ctx, key)
}

// GetCategory returns a single category by id or slug
func (s *Service) GetCategory(ctx context.Context, key string) (*CategoryResponse, error) {
	c, err := s.primary.GetCategoryByKey(ctx, key)
	if err != nil && !errors.Is(err, shared.ErrNotFound) && s.fallback != nil {
		s.logFallback(ctx, "GetCategoryByKey", err, zap.String("key", key))
		c, err = s.fallback.GetCategoryByKey(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(*c)
	return &resp, nil
}

// Browse applies the search, category, price and sort options of q to the
// full product list.
func (s *Service) Browse(ctx context.Context, q BrowseQuery) (*BrowseResponse, error) {
	products, err := s.products(ctx, "ListProducts", func(src catalog.Source) ([]catalog.Product, error) {
		return src.ListProducts(ctx)
	})
	if err != nil {
		return nil, err
	}

	filter, err := q.toFilter(products)
	if err != nil {
		return nil, err
	}

	result := catalog.Apply(products, filter)
	return &BrowseResponse{
		Products: ToProductResponses(result),
		Total:    len(result),
		Sort:     string(filter.Sort.Normalize()),
	}, nil
}

func (q BrowseQuery) toFilter(products []catalog.Product) (catalog.Filter, error) {
	f := catalog.Filter{
		SearchTerm: q.Search,
		Category:   q.Category,
		Sort:       catalog.SortKey(q.Sort).Normalize(),
		MatchTags:  q.MatchTags,
	}
	if q.MinPrice == "" && q.MaxPrice == "" {
		return f, nil
	}

	r := catalog.PriceRange{Min: decimal.Zero, Max: maxPrice(products)}
	if q.MinPrice != "" {
		v, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return f, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid min_price: %s", q.MinPrice))
		}
		r.Min = v
	}
	if q.MaxPrice != "" {
		v, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return f, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid max_price: %s", q.MaxPrice))
		}
		r.Max = v
	}
	f.PriceRange = &r
	return f, nil
}

func maxPrice(products []catalog.Product) decimal.Decimal {
	m := decimal.Zero
	for _, p := range products {
		if p.Price.GreaterThan(m) {
			m = p.Price
		}
	}
	return m
}

func (s *Service) products(ctx context.Context, op string, fetch func(catalog.Source) ([]catalog.Product, error)) ([]catalog.Product, error) {
	products, err := fetch(s.primary)
	if err == nil || s.fallback == nil {
		return products, err
	}
	s.logFallback(ctx, op, err)
	return fetch(s.fallback)
}

func (s *Service) categories(ctx context.Context, op string, fetch func(catalog.Source) ([]catalog.Category, error)) ([]catalog.Category, error) {
	categories, err := fetch(s.primary)
	if err == nil || s.fallback == nil {
		return categories, err
	}
	s.logFallback(ctx, op, err)
	return fetch(s.fallback)
}

func (s *Service) logFallback(ctx context.Context, op string, err error, fields ...zap.Field) {
	s.metrics.RecordCatalogFallback(ctx, op)
	telemetry.AddEvent(ctx, "catalog.fallback", attribute.String("operation", op))

	fields = append(fields,
		zap.String("operation", op),
		zap.Error(err),
	)
	s.logger.Warn("Catalog source failed, serving built-in catalog", fields...)
}
