package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/respawnadega/storefront/internal/application/catalog"
	"github.com/respawnadega/storefront/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(products []catalogapp.ProductResponse) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	s := newStorefront(t)

	t.Run("whole catalog sorted by name", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[catalogapp.BrowseResponse](t, w)
		assert.Equal(t, 12, env.Data.Total)
		assert.Equal(t, 12, env.Meta.Total)
		assert.Equal(t, "name", env.Data.Sort)
		assert.Equal(t, "10", env.Data.Products[0].ID, "Água sorts first under pt-BR collation")
	})

	t.Run("category and sort", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?category=vinho&sort=price-asc", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[catalogapp.BrowseResponse](t, w)
		assert.Equal(t, []string{"5", "4", "6"}, productIDs(env.Data.Products))
	})

	t.Run("price range is inclusive", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?category=vinho&min_price=38.50&max_price=45.90", "", nil)

		env := decode[catalogapp.BrowseResponse](t, w)
		assert.ElementsMatch(t, []string{"4", "5"}, productIDs(env.Data.Products))
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?search=WHISKY", "", nil)

		env := decode[catalogapp.BrowseResponse](t, w)
		assert.Equal(t, []string{"7"}, productIDs(env.Data.Products))
	})

	t.Run("all means no category filter", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?category=all", "", nil)

		env := decode[catalogapp.BrowseResponse](t, w)
		assert.Equal(t, 12, env.Data.Total)
	})

	t.Run("unknown sort key is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?sort=cheapest", "", nil)

		info := requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "sort", info.Details[0].Field)
	})

	t.Run("non numeric price is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products?min_price=abc", "", nil)
		requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestCatalogHandler_Featured(t *testing.T) {
	s := newStorefront(t)

	w := s.do(t, http.MethodGet, "/api/v1/catalog/products/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]catalogapp.ProductResponse](t, w)
	assert.ElementsMatch(t, []string{"1", "3", "4", "6", "7", "9"}, productIDs(products.Data))

	w = s.do(t, http.MethodGet, "/api/v1/catalog/categories/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode[[]catalogapp.CategoryResponse](t, w)
	assert.Len(t, categories.Data, 3)
	assert.Equal(t, 3, categories.Meta.Total)
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	s := newStorefront(t)

	t.Run("found", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products/4", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[catalogapp.ProductResponse](t, w)
		assert.Equal(t, "Vinho Tinto Cabernet Sauvignon", env.Data.Name)
		assert.Equal(t, "R$ 45,90", env.Data.PriceFormatted)
		assert.Equal(t, "R$ 52,90", env.Data.OriginalPriceFormatted)
	})

	t.Run("missing", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/products/999", "", nil)
		requireErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestCatalogHandler_Categories(t *testing.T) {
	s := newStorefront(t)

	t.Run("list", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/categories", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[[]catalogapp.CategoryResponse](t, w)
		assert.Len(t, env.Data, 4)
	})

	t.Run("get", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/categories/vinho", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[catalogapp.CategoryResponse](t, w)
		assert.Equal(t, "Vinhos", env.Data.Name)
	})

	t.Run("products of a category", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/categories/vinho/products", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode[[]catalogapp.ProductResponse](t, w)
		assert.ElementsMatch(t, []string{"4", "5", "6"}, productIDs(env.Data))
	})

	t.Run("products of an unknown category", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/categories/licor/products", "", nil)
		requireErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
