package catalogsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const cmsCategoriesBody = `{
  "results": [
    {"uid": "vinho", "name": "Vinhos", "icon": "🍷", "featured": true, "image": {"url": "https://cdn.example.com/vinhos.jpg"}, "subcategories": ["Tinto", "Branco"]},
    {"uid": "sem-alcool", "name": "Sem Álcool", "featured": false}
  ],
  "total_results_size": 2
}`

const cmsProductsBody = `{
  "results": [
    {"uid": "4", "name": "Vinho Tinto", "price": 45.9, "original_price": "52.90", "category": {"uid": "vinho", "name": "Vinhos"}, "alcohol_content": "13,5%", "in_stock": true, "rating": 4.7, "image": "https://cdn.example.com/4.jpg"},
    {"uid": "5", "name": "Vinho Branco", "price": "38.50", "category": {"name": "vinhos"}, "alcohol_content": 12, "available": true},
    {"uid": "10", "name": "Água", "price": "3.50", "category": "sem-alcool", "stock": 0},
    {"uid": "11", "name": "Suco", "price": "8.90", "category": "sem-alcool"},
    {"uid": "", "name": "Sem id", "price": "1.00", "category": "sem-alcool"},
    {"uid": "13", "name": "Preço errado", "price": "-1", "category": "sem-alcool"}
  ],
  "total_results_size": 6
}`

func newCMSTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/categories":
			_, _ = w.Write([]byte(cmsCategoriesBody))
		case "/categories/vinho":
			_, _ = w.Write([]byte(`{"uid": "vinho", "name": "Vinhos"}`))
		case "/products":
			_, _ = w.Write([]byte(cmsProductsBody))
		case "/products/4":
			_, _ = w.Write([]byte(`{"uid": "4", "name": "Vinho Tinto", "price": "45.90", "category": "Vinhos", "available": false}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestCMSSource(t *testing.T) (*CMSSource, *observer.ObservedLogs) {
	t.Helper()
	server := newCMSTestServer(t)
	client := newTestCMSClient(t, server.URL)
	core, logs := observer.New(zap.WarnLevel)
	return NewCMSSource(client, zap.New(core)), logs
}

func TestCMSSource_ListProducts(t *testing.T) {
	src, logs := newTestCMSSource(t)

	products, err := src.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, 2, logs.FilterMessage("Skipping invalid product document").Len())

	tinto := products[0]
	assert.Equal(t, "4", tinto.ID)
	assert.Equal(t, "vinho", tinto.Category)
	assert.Equal(t, "45.9", tinto.Price.String())
	require.NotNil(t, tinto.OriginalPrice)
	assert.Equal(t, "52.9", tinto.OriginalPrice.String())
	require.NotNil(t, tinto.AlcoholContent)
	assert.Equal(t, "13.5", tinto.AlcoholContent.String())
	assert.Equal(t, "https://cdn.example.com/4.jpg", tinto.Image)
	assert.True(t, tinto.InStock)

	branco := products[1]
	assert.Equal(t, "vinho", branco.Category, "category linked by name resolves to its uid")
	assert.Equal(t, "12", branco.AlcoholContent.String())
	assert.True(t, branco.InStock)

	agua := products[2]
	assert.False(t, agua.InStock, "zero stock means out of stock")
	assert.Nil(t, agua.AlcoholContent)

	suco := products[3]
	assert.True(t, suco.InStock, "no availability data means available")
}

func TestCMSSource_GetProductByKey(t *testing.T) {
	src, _ := newTestCMSSource(t)
	ctx := context.Background()

	p, err := src.GetProductByKey(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "vinho", p.Category)
	assert.False(t, p.InStock)

	_, err = src.GetProductByKey(ctx, "99")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCMSSource_Categories(t *testing.T) {
	src, _ := newTestCMSSource(t)
	ctx := context.Background()

	categories, err := src.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "https://cdn.example.com/vinhos.jpg", categories[0].Image)
	assert.Equal(t, []string{"Tinto", "Branco"}, categories[0].Subcategories)

	c, err := src.GetCategoryByKey(ctx, "vinho")
	require.NoError(t, err)
	assert.Equal(t, "Vinhos", c.Name)

	_, err = src.GetCategoryByKey(ctx, "licor")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCMSSource_SourceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := NewCMSSource(newTestCMSClient(t, server.URL), nil)
	_, err := src.ListFeaturedProducts(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
}
