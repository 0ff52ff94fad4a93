package catalogsource

import (
	"context"
	"strings"

	"github.com/respawnadega/storefront/internal/domain/catalog"
	"go.uber.org/zap"
)

// CMSSource adapts content API documents to the canonical catalog model.
// Documents that fail validation are skipped and logged.
type CMSSource struct {
	client *CMSClient
	logger *zap.Logger
}

var _ catalog.Source = (*CMSSource)(nil)

// NewCMSSource creates a catalog source on top of client
func NewCMSSource(client *CMSClient, logger *zap.Logger) *CMSSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CMSSource{client: client, logger: logger.Named("cms_source")}
}

// ListProducts implements catalog.Source
func (s *CMSSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.listProducts(ctx, "", false)
}

// ListFeaturedProducts implements catalog.Source
func (s *CMSSource) ListFeaturedProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.listProducts(ctx, "", true)
}

// ListProductsByCategory implements catalog.Source
func (s *CMSSource) ListProductsByCategory(ctx context.Context, categoryKey string) ([]catalog.Product, error) {
	return s.listProducts(ctx, categoryKey, false)
}

// GetProductByKey implements catalog.Source
func (s *CMSSource) GetProductByKey(ctx context.Context, key string) (*catalog.Product, error) {
	categories, err := s.client.ListCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	doc, err := s.client.GetProduct(ctx, key)
	if err != nil {
		return nil, err
	}
	p, err := toProduct(*doc, newCategoryResolver(categories))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories implements catalog.Source
func (s *CMSSource) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.listCategories(ctx, false)
}

// ListFeaturedCategories implements catalog.Source
func (s *CMSSource) ListFeaturedCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.listCategories(ctx, true)
}

// GetCategoryByKey implements catalog.Source
func (s *CMSSource) GetCategoryByKey(ctx context.Context, key string) (*catalog.Category, error) {
	doc, err := s.client.GetCategory(ctx, key)
	if err != nil {
		return nil, err
	}
	c, err := toCategory(*doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CMSSource) listProducts(ctx context.Context, categoryKey string, featuredOnly bool) ([]catalog.Product, error) {
	categories, err := s.client.ListCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	docs, err := s.client.ListProducts(ctx, categoryKey, featuredOnly)
	if err != nil {
		return nil, err
	}

	resolve := newCategoryResolver(categories)
	products := make([]catalog.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := toProduct(doc, resolve)
		if err != nil {
			s.logger.Warn("Skipping invalid product document", zap.String("uid", doc.UID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *CMSSource) listCategories(ctx context.Context, featuredOnly bool) ([]catalog.Category, error) {
	docs, err := s.client.ListCategories(ctx, featuredOnly)
	if err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(docs))
	for _, doc := range docs {
		c, err := toCategory(doc)
		if err != nil {
			s.logger.Warn("Skipping invalid category document", zap.String("uid", doc.UID), zap.Error(err))
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// categoryResolver maps a product's category link to a category id. Links
// may carry the uid or only the display name.
type categoryResolver func(cmsLink) string

func newCategoryResolver(categories []cmsCategory) categoryResolver {
	byUID := make(map[string]string, len(categories))
	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		byUID[c.UID] = c.UID
		byName[strings.ToLower(c.Name)] = c.UID
	}

	return func(link cmsLink) string {
		if id, ok := byUID[link.UID]; ok {
			return id
		}
		if id, ok := byName[strings.ToLower(link.Name)]; ok {
			return id
		}
		if id, ok := byName[strings.ToLower(link.UID)]; ok {
			return id
		}
		return link.UID
	}
}

func toProduct(doc cmsProduct, resolve categoryResolver) (catalog.Product, error) {
	p := catalog.Product{
		ID:             doc.UID,
		Name:           doc.Name,
		Description:    doc.Description,
		Price:          doc.Price,
		OriginalPrice:  doc.OriginalPrice,
		Category:       resolve(doc.Category),
		Subcategory:    doc.Subcategory,
		Brand:          doc.Brand,
		Origin:         doc.Origin,
		Volume:         doc.Volume,
		AlcoholContent: doc.AlcoholContent.Value,
		Image:          doc.Image.URL,
		InStock:        inStock(doc),
		Featured:       doc.Featured,
		Rating:         doc.Rating,
		ReviewCount:    doc.ReviewCount,
		Tags:           doc.Tags,
	}
	if err := p.Validate(); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// inStock prefers an explicit flag and falls back to the stock count.
// Documents carrying none of them are treated as available.
func inStock(doc cmsProduct) bool {
	switch {
	case doc.InStock != nil:
		return *doc.InStock
	case doc.Available != nil:
		return *doc.Available && (doc.Stock == nil || *doc.Stock > 0)
	case doc.Stock != nil:
		return *doc.Stock > 0
	default:
		return true
	}
}

func toCategory(doc cmsCategory) (catalog.Category, error) {
	c := catalog.Category{
		ID:            doc.UID,
		Name:          doc.Name,
		Description:   doc.Description,
		Icon:          doc.Icon,
		Color:         doc.Color,
		Image:         doc.Image.URL,
		Featured:      doc.Featured,
		Subcategories: doc.Subcategories,
	}
	if err := c.Validate(); err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}
