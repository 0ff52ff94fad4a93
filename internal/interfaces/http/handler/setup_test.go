package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/respawnadega/storefront/internal/application/cart"
	catalogapp "github.com/respawnadega/storefront/internal/application/catalog"
	checkoutapp "github.com/respawnadega/storefront/internal/application/checkout"
	"github.com/respawnadega/storefront/internal/domain/checkout"
	"github.com/respawnadega/storefront/internal/infrastructure/cache"
	"github.com/respawnadega/storefront/internal/infrastructure/catalogsource"
	"github.com/respawnadega/storefront/internal/infrastructure/messaging"
	"github.com/respawnadega/storefront/internal/interfaces/http/dto"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

// storefront wires real services over the built-in catalog and in-memory
// cart storage
type storefront struct {
	engine   *gin.Engine
	catalog  *CatalogHandler
	cart     *CartHandler
	checkout *CheckoutHandler
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()

	log := zap.NewNop()
	catalogSvc := catalogapp.NewService(nil, catalogsource.NewStaticSource(), log)
	cartSvc := cartapp.NewService(cache.NewInMemoryCartStorage(), catalogSvc, log)
	formatter := checkout.NewOrderFormatter(checkout.DefaultBusinessInfo(),
		checkout.WithClock(func() time.Time { return fixedNow }),
		checkout.WithLocation(time.UTC),
	)
	checkoutSvc := checkoutapp.NewService(cartSvc, formatter, messaging.NewWhatsAppDispatcher(log), log)

	s := &storefront{
		engine:   gin.New(),
		catalog:  NewCatalogHandler(catalogSvc),
		cart:     NewCartHandler(cartSvc),
		checkout: NewCheckoutHandler(checkoutSvc),
	}
	s.engine.Use(middleware.RequestID())

	api := s.engine.Group("/api/v1")

	cat := api.Group("/catalog")
	cat.GET("/products", s.catalog.ListProducts)
	cat.GET("/products/featured", s.catalog.ListFeaturedProducts)
	cat.GET("/products/:key", s.catalog.GetProduct)
	cat.GET("/categories", s.catalog.ListCategories)
	cat.GET("/categories/featured", s.catalog.ListFeaturedCategories)
	cat.GET("/categories/:key", s.catalog.GetCategory)
	cat.GET("/categories/:key/products", s.catalog.ListCategoryProducts)

	c := api.Group("/cart", middleware.CartSession())
	c.GET("", s.cart.Get)
	c.DELETE("", s.cart.Clear)
	c.POST("/toggle", s.cart.Toggle)
	c.POST("/items", s.cart.AddItem)
	c.PUT("/items/:product_id", s.cart.UpdateItem)
	c.DELETE("/items/:product_id", s.cart.RemoveItem)
	c.PUT("/customer", s.cart.SetCustomer)
	c.DELETE("/customer", s.cart.ClearCustomer)

	co := api.Group("/checkout", middleware.CartSession(middleware.WithSessionQuery(middleware.SessionQueryParam)))
	co.POST("", s.checkout.Checkout)
	co.GET("/whatsapp", s.checkout.Redirect)

	api.POST("/contact", s.checkout.Contact)

	return s
}

// do sends a request and returns the recorder. body is JSON-encoded unless
// it is already a string.
func (s *storefront) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// envelope decodes the response with data unmarshaled into T
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) *dto.ErrorInfo {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decode[json.RawMessage](t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	return env.Error
}

func sessionOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	session := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)
	return session
}

func validCustomer() map[string]any {
	return map[string]any{
		"name":  "João Silva",
		"phone": "(11) 98765-4321",
		"address": map[string]any{
			"street":       "Rua Augusta",
			"number":       "1500",
			"complement":   "Apto 42",
			"neighborhood": "Consolação",
			"city":         "São Paulo",
			"state":        "SP",
			"zip_code":     "01304-001",
		},
	}
}
