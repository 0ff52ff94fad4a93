package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockSource is a mock implementation of catalog.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockSource) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockSource) GetProductByKey(ctx context.Context, key string) (*catalog.Product, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockSource) GetCategoryByKey(ctx context.Context, key string) (*catalog.Category, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockSource) ListProductsByCategory(ctx context.Context, categoryKey string) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockSource) ListFeaturedProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockSource) ListFeaturedCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func testProducts() []catalog.Product {
	abv := decimal.RequireFromString("13.5")
	orig := decimal.RequireFromString("52.90")
	return []catalog.Product{
		{ID: "4", Name: "Vinho Tinto Cabernet", Price: decimal.RequireFromString("45.90"), OriginalPrice: &orig, AlcoholContent: &abv, Category: "vinho", InStock: true},
		{ID: "5", Name: "Vinho Branco Chardonnay", Price: decimal.RequireFromString("38.50"), Category: "vinho", InStock: true},
		{ID: "7", Name: "Whisky Single Malt", Price: decimal.RequireFromString("189.90"), Category: "destilado", InStock: true},
		{ID: "2", Name: "Cerveja Pilsen", Price: decimal.RequireFromString("8.50"), Category: "cerveja", InStock: false},
	}
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

func TestService_FallsBackOnSourceFailure(t *testing.T) {
	ctx := context.Background()
	primary := new(MockSource)
	fallback := new(MockSource)
	logger, logs := newObservedLogger()
	svc := NewService(primary, fallback, logger)

	primary.On("ListProducts", ctx).Return(nil, errors.New("cms timeout"))
	fallback.On("ListProducts", ctx).Return(testProducts(), nil)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, 1, logs.FilterMessage("Catalog source failed, serving built-in catalog").Len())

	primary.AssertExpectations(t)
	fallback.AssertExpectations(t)
}

func TestService_UsesPrimaryWhenHealthy(t *testing.T) {
	ctx := context.Background()
	primary := new(MockSource)
	fallback := new(MockSource)
	svc := NewService(primary, fallback, zap.NewNop())

	primary.On("ListCategories", ctx).Return([]catalog.Category{{ID: "vinho", Name: "Vinhos"}}, nil)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, []string{}, categories[0].Subcategories)
	fallback.AssertNotCalled(t, "ListCategories", mock.Anything)
}

func TestService_FindProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("not found is not a source failure", func(t *testing.T) {
		primary := new(MockSource)
		fallback := new(MockSource)
		svc := NewService(primary, fallback, zap.NewNop())
		primary.On("GetProductByKey", ctx, "99").Return(nil, shared.ErrNotFound)

		_, err := svc.FindProduct(ctx, "99")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		fallback.AssertNotCalled(t, "GetProductByKey", mock.Anything, mock.Anything)
	})

	t.Run("source failure looks up the built-in catalog", func(t *testing.T) {
		primary := new(MockSource)
		fallback := new(MockSource)
		svc := NewService(primary, fallback, zap.NewNop())
		p := testProducts()[0]
		primary.On("GetProductByKey", ctx, "4").Return(nil, shared.ErrSourceUnavailable)
		fallback.On("GetProductByKey", ctx, "4").Return(&p, nil)

		resp, err := svc.GetProduct(ctx, "4")
		require.NoError(t, err)
		assert.Equal(t, "R$ 45,90", resp.PriceFormatted)
		assert.Equal(t, "R$ 52,90", resp.OriginalPriceFormatted)
		assert.Equal(t, 13, resp.DiscountPercent)
		assert.Equal(t, "13,5%", resp.AlcoholContentLabel)
	})
}

func TestService_GetCategory(t *testing.T) {
	ctx := context.Background()
	primary := new(MockSource)
	fallback := new(MockSource)
	svc := NewService(primary, fallback, zap.NewNop())

	primary.On("GetCategoryByKey", ctx, "vinho").Return(nil, errors.New("boom"))
	fallback.On("GetCategoryByKey", ctx, "vinho").Return(&catalog.Category{ID: "vinho", Name: "Vinhos"}, nil)

	resp, err := svc.GetCategory(ctx, "vinho")
	require.NoError(t, err)
	assert.Equal(t, "Vinhos", resp.Name)
}

func TestService_Browse(t *testing.T) {
	ctx := context.Background()
	static := new(MockSource)
	svc := NewService(nil, static, zap.NewNop())
	static.On("ListProducts", ctx).Return(testProducts(), nil)

	t.Run("category and price range", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseQuery{Category: "vinho", MinPrice: "10", MaxPrice: "50"})
		require.NoError(t, err)
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "5", resp.Products[0].ID)
		assert.Equal(t, "4", resp.Products[1].ID)
		assert.Equal(t, "name", resp.Sort)
	})

	t.Run("only a minimum price", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseQuery{MinPrice: "100"})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "7", resp.Products[0].ID)
	})

	t.Run("unavailable products never appear", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseQuery{Search: "pilsen"})
		require.NoError(t, err)
		assert.Zero(t, resp.Total)
	})

	t.Run("sort by price descending", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseQuery{Sort: "price-desc"})
		require.NoError(t, err)
		assert.Equal(t, "7", resp.Products[0].ID)
		assert.Equal(t, "price-desc", resp.Sort)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := svc.Browse(ctx, BrowseQuery{MinPrice: "abc"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestService_StaticOnlyReturnsErrors(t *testing.T) {
	ctx := context.Background()
	static := new(MockSource)
	svc := NewService(nil, static, zap.NewNop())
	static.On("ListFeaturedProducts", ctx).Return(nil, errors.New("broken"))

	_, err := svc.ListFeaturedProducts(ctx)
	assert.Error(t, err)
}

func TestService_CountsFallbacks(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	primary := new(MockSource)
	fallback := new(MockSource)
	svc := NewService(primary, fallback, zap.NewNop())
	svc.SetMetrics(metrics)

	primary.On("ListFeaturedProducts", ctx).Return(nil, errors.New("cms timeout"))
	fallback.On("ListFeaturedProducts", ctx).Return(testProducts()[:1], nil)

	_, err = svc.ListFeaturedProducts(ctx)
	require.NoError(t, err)
	_, err = svc.ListFeaturedProducts(ctx)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var total int64
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "storefront_catalog_fallbacks_total" {
			continue
		}
		for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
			total += dp.Value
		}
	}
	assert.Equal(t, int64(2), total)
}

func TestToProductResponse_Alcoholic(t *testing.T) {
	abv := decimal.RequireFromString("5.5")
	zero := decimal.Zero

	beer := ToProductResponse(catalog.Product{ID: "1", Name: "Cerveja", Price: decimal.NewFromInt(10), AlcoholContent: &abv})
	assert.True(t, beer.Alcoholic)
	assert.Equal(t, "5,5%", beer.AlcoholContentLabel)

	soda := ToProductResponse(catalog.Product{ID: "2", Name: "Refrigerante", Price: decimal.NewFromInt(6), AlcoholContent: &zero})
	assert.False(t, soda.Alcoholic)

	water := ToProductResponse(catalog.Product{ID: "3", Name: "Água", Price: decimal.NewFromInt(3)})
	assert.False(t, water.Alcoholic)
	assert.Empty(t, water.AlcoholContentLabel)
}
