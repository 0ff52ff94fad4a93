package catalogsource

import (
	"context"

	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StaticSource serves the built-in catalog. It never fails and is the
// fallback whenever the CMS is unreachable.
type StaticSource struct {
	products   []catalog.Product
	categories []catalog.Category
}

var _ catalog.Source = (*StaticSource)(nil)

// NewStaticSource returns the built-in storefront catalog
func NewStaticSource() *StaticSource {
	return &StaticSource{
		products:   builtinProducts(),
		categories: builtinCategories(),
	}
}

// NewStaticSourceWith serves the given data. Used by tests and seeds.
func NewStaticSourceWith(products []catalog.Product, categories []catalog.Category) *StaticSource {
	return &StaticSource{products: products, categories: categories}
}

// ListProducts implements catalog.Source
func (s *StaticSource) ListProducts(_ context.Context) ([]catalog.Product, error) {
	return cloneProducts(s.products, nil), nil
}

// ListCategories implements catalog.Source
func (s *StaticSource) ListCategories(_ context.Context) ([]catalog.Category, error) {
	return cloneCategories(s.categories, nil), nil
}

// GetProductByKey implements catalog.Source
func (s *StaticSource) GetProductByKey(_ context.Context, key string) (*catalog.Product, error) {
	for _, p := range s.products {
		if p.ID == key {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

// GetCategoryByKey implements catalog.Source
func (s *StaticSource) GetCategoryByKey(_ context.Context, key string) (*catalog.Category, error) {
	for _, c := range s.categories {
		if c.ID == key {
			c.Subcategories = append([]string(nil), c.Subcategories...)
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

// ListProductsByCategory implements catalog.Source
func (s *StaticSource) ListProductsByCategory(_ context.Context, categoryKey string) ([]catalog.Product, error) {
	return cloneProducts(s.products, func(p catalog.Product) bool { return p.Category == categoryKey }), nil
}

// ListFeaturedProducts implements catalog.Source
func (s *StaticSource) ListFeaturedProducts(_ context.Context) ([]catalog.Product, error) {
	return cloneProducts(s.products, func(p catalog.Product) bool { return p.Featured }), nil
}

// ListFeaturedCategories implements catalog.Source
func (s *StaticSource) ListFeaturedCategories(_ context.Context) ([]catalog.Category, error) {
	return cloneCategories(s.categories, func(c catalog.Category) bool { return c.Featured }), nil
}

func cloneProducts(products []catalog.Product, keep func(catalog.Product) bool) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if keep == nil || keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func cloneCategories(categories []catalog.Category, keep func(catalog.Category) bool) []catalog.Category {
	out := make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		if keep == nil || keep(c) {
			c.Subcategories = append([]string(nil), c.Subcategories...)
			out = append(out, c)
		}
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func builtinCategories() []catalog.Category {
	return []catalog.Category{
		{
			ID:            catalog.CategoryBeer,
			Name:          "Cervejas",
			Description:   "Artesanais, importadas e nacionais",
			Icon:          "🍺",
			Color:         "#f59e0b",
			Image:         "/images/categories/cervejas.jpeg",
			Featured:      true,
			Subcategories: []string{"IPA", "Pilsen", "Weiss", "Stout", "Lager", "Artesanal"},
		},
		{
			ID:            catalog.CategoryWine,
			Name:          "Vinhos",
			Description:   "Tintos, brancos e espumantes",
			Icon:          "🍷",
			Color:         "#dc2626",
			Image:         "/images/categories/vinhos.jpeg",
			Featured:      true,
			Subcategories: []string{"Tinto", "Branco", "Rosé", "Espumante", "Frisante"},
		},
		{
			ID:            catalog.CategorySpirits,
			Name:          "Destilados",
			Description:   "Whisky, vodka, gin e cachaça",
			Icon:          "🥃",
			Color:         "#7c2d12",
			Image:         "/images/categories/destilados.jpeg",
			Featured:      true,
			Subcategories: []string{"Whisky", "Vodka", "Gin", "Cachaça", "Rum", "Tequila"},
		},
		{
			ID:            catalog.CategoryNonAlcoholic,
			Name:          "Sem Álcool",
			Description:   "Refrigerantes, sucos e águas",
			Icon:          "🥤",
			Color:         "#16a34a",
			Image:         "/images/categories/sem-alcool.jpeg",
			Subcategories: []string{"Refrigerante", "Suco", "Água", "Energético", "Isotônico"},
		},
	}
}

func builtinProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:             "1",
			Name:           "Cerveja IPA Artesanal Hoppy",
			Description:    "Uma IPA encorpada com notas cítricas e amargor equilibrado. Produzida com lúpulos selecionados e maltes especiais.",
			Price:          dec("12.90"),
			OriginalPrice:  decPtr("15.90"),
			Category:       catalog.CategoryBeer,
			Subcategory:    "IPA",
			Brand:          "Cervejaria Artesanal",
			AlcoholContent: decPtr("6.5"),
			Volume:         "355ml",
			Origin:         "Brasil",
			Image:          "/images/products/cerveja-hoppy.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.8"),
			ReviewCount:    124,
			Tags:           []string{"artesanal", "ipa", "citrica", "premium"},
		},
		{
			ID:             "2",
			Name:           "Cerveja Pilsen Premium",
			Description:    "Cerveja pilsen de alta qualidade, refrescante e com sabor suave. Perfeita para momentos de descontração.",
			Price:          dec("8.50"),
			Category:       catalog.CategoryBeer,
			Subcategory:    "Pilsen",
			Brand:          "Brewery Premium",
			AlcoholContent: decPtr("4.8"),
			Volume:         "350ml",
			Origin:         "Brasil",
			Image:          "/images/products/cerveja-pilsen.jpeg",
			InStock:        true,
			Rating:         dec("4.3"),
			ReviewCount:    89,
			Tags:           []string{"pilsen", "refrescante", "suave"},
		},
		{
			ID:             "3",
			Name:           "Cerveja Weiss Tradicional",
			Description:    "Cerveja de trigo alemã tradicional, com sabor frutado e refrescante. Ideal para acompanhar pratos leves.",
			Price:          dec("11.20"),
			Category:       catalog.CategoryBeer,
			Subcategory:    "Weiss",
			Brand:          "German Brew",
			AlcoholContent: decPtr("5.2"),
			Volume:         "500ml",
			Origin:         "Alemanha",
			Image:          "/images/products/cerveja-weiss.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.6"),
			ReviewCount:    67,
			Tags:           []string{"weiss", "trigo", "alemã", "frutada"},
		},
		{
			ID:             "4",
			Name:           "Vinho Tinto Cabernet Sauvignon",
			Description:    "Vinho tinto encorpado com notas de frutas vermelhas e taninos macios. Safra 2020 de vinhedos selecionados.",
			Price:          dec("45.90"),
			OriginalPrice:  decPtr("52.90"),
			Category:       catalog.CategoryWine,
			Subcategory:    "Tinto",
			Brand:          "Vinícola Premium",
			AlcoholContent: decPtr("13.5"),
			Volume:         "750ml",
			Origin:         "Chile",
			Image:          "/images/products/vinho-cabernet.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.7"),
			ReviewCount:    156,
			Tags:           []string{"tinto", "cabernet", "encorpado", "safra-2020"},
		},
		{
			ID:             "5",
			Name:           "Vinho Branco Chardonnay",
			Description:    "Vinho branco elegante com notas florais e cítricas. Perfeito para acompanhar peixes e frutos do mar.",
			Price:          dec("38.50"),
			Category:       catalog.CategoryWine,
			Subcategory:    "Branco",
			Brand:          "Vinhos do Vale",
			AlcoholContent: decPtr("12.8"),
			Volume:         "750ml",
			Origin:         "Argentina",
			Image:          "/images/products/vinho-chardonnay.jpeg",
			InStock:        true,
			Rating:         dec("4.4"),
			ReviewCount:    92,
			Tags:           []string{"branco", "chardonnay", "floral", "citrico"},
		},
		{
			ID:             "6",
			Name:           "Espumante Brut Rosé",
			Description:    "Espumante rosé delicado com bolhas finas e sabor refrescante. Ideal para celebrações especiais.",
			Price:          dec("65.00"),
			Category:       catalog.CategoryWine,
			Subcategory:    "Espumante",
			Brand:          "Champagne House",
			AlcoholContent: decPtr("12.0"),
			Volume:         "750ml",
			Origin:         "França",
			Image:          "/images/products/espumante-brut-rose.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.9"),
			ReviewCount:    203,
			Tags:           []string{"espumante", "rose", "celebração", "premium"},
		},
		{
			ID:             "7",
			Name:           "Whisky Single Malt 12 Anos",
			Description:    "Whisky escocês single malt envelhecido por 12 anos em barris de carvalho. Sabor complexo e marcante.",
			Price:          dec("189.90"),
			OriginalPrice:  decPtr("220.00"),
			Category:       catalog.CategorySpirits,
			Subcategory:    "Whisky",
			Brand:          "Highland Distillery",
			AlcoholContent: decPtr("40.0"),
			Volume:         "750ml",
			Origin:         "Escócia",
			Image:          "/images/products/whisky-single-malt.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.8"),
			ReviewCount:    87,
			Tags:           []string{"whisky", "single-malt", "12-anos", "escoces"},
		},
		{
			ID:             "8",
			Name:           "Gin Premium London Dry",
			Description:    "Gin premium com botanicos selecionados, incluindo zimbro, coentro e casca de limão. Sabor clássico e refinado.",
			Price:          dec("95.50"),
			Category:       catalog.CategorySpirits,
			Subcategory:    "Gin",
			Brand:          "London Spirits",
			AlcoholContent: decPtr("42.0"),
			Volume:         "700ml",
			Origin:         "Inglaterra",
			Image:          "/images/products/gin-london-dry.jpeg",
			InStock:        true,
			Rating:         dec("4.5"),
			ReviewCount:    134,
			Tags:           []string{"gin", "london-dry", "botanicos", "premium"},
		},
		{
			ID:             "9",
			Name:           "Cachaça Artesanal Envelhecida",
			Description:    "Cachaça artesanal envelhecida em barris de madeira nobre. Sabor suave e aroma marcante da cana-de-açúcar.",
			Price:          dec("78.90"),
			Category:       catalog.CategorySpirits,
			Subcategory:    "Cachaça",
			Brand:          "Alambique Tradicional",
			AlcoholContent: decPtr("40.0"),
			Volume:         "700ml",
			Origin:         "Brasil",
			Image:          "/images/products/cachaca-artesanal.jpeg",
			InStock:        true,
			Featured:       true,
			Rating:         dec("4.6"),
			ReviewCount:    76,
			Tags:           []string{"cachaça", "artesanal", "envelhecida", "brasileira"},
		},
		{
			ID:          "10",
			Name:        "Água Mineral Premium",
			Description: "Água mineral natural de fonte cristalina. Rica em minerais essenciais e com pH equilibrado.",
			Price:       dec("3.50"),
			Category:    catalog.CategoryNonAlcoholic,
			Subcategory: "Água",
			Brand:       "Fonte Cristal",
			Volume:      "500ml",
			Origin:      "Brasil",
			Image:       "/images/products/agua-mineral.jpeg",
			InStock:     true,
			Rating:      dec("4.2"),
			ReviewCount: 45,
			Tags:        []string{"agua", "mineral", "natural", "cristalina"},
		},
		{
			ID:          "11",
			Name:        "Suco Natural de Laranja",
			Description: "Suco 100% natural de laranjas selecionadas. Sem conservantes ou açúcar adicionado.",
			Price:       dec("8.90"),
			Category:    catalog.CategoryNonAlcoholic,
			Subcategory: "Suco",
			Brand:       "Frutas do Campo",
			Volume:      "1L",
			Origin:      "Brasil",
			Image:       "/images/products/suco-laranja.jpeg",
			InStock:     true,
			Rating:      dec("4.4"),
			ReviewCount: 62,
			Tags:        []string{"suco", "natural", "laranja", "sem-conservantes"},
		},
		{
			ID:          "12",
			Name:        "Energético Premium",
			Description: "Bebida energética com taurina, cafeína e vitaminas do complexo B. Sabor refrescante de frutas vermelhas.",
			Price:       dec("6.50"),
			Category:    catalog.CategoryNonAlcoholic,
			Subcategory: "Energético",
			Brand:       "Energy Plus",
			Volume:      "250ml",
			Origin:      "Brasil",
			Image:       "/images/products/energetico.jpeg",
			InStock:     true,
			Rating:      dec("4.1"),
			ReviewCount: 98,
			Tags:        []string{"energetico", "taurina", "cafeina", "vitaminas"},
		},
	}
}
