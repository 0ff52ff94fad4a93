package router

import (
	"github.com/gin-gonic/gin"
	"github.com/respawnadega/storefront/internal/interfaces/http/handler"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
)

// Handlers bundles the storefront handlers mounted by Storefront
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	System   *handler.SystemHandler
}

// Storefront mounts the storefront API on engine. /health stays at the
// root for load balancers; everything else lives under /api/<version>.
// Cart and checkout routes run behind the cart session middleware.
func Storefront(engine *gin.Engine, h Handlers, opts ...RouterOption) *Router {
	engine.GET("/health", h.System.Health)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", h.Catalog.ListProducts)
	catalog.GET("/products/featured", h.Catalog.ListFeaturedProducts)
	catalog.GET("/products/:key", h.Catalog.GetProduct)
	catalog.GET("/categories", h.Catalog.ListCategories)
	catalog.GET("/categories/featured", h.Catalog.ListFeaturedCategories)
	catalog.GET("/categories/:key", h.Catalog.GetCategory)
	catalog.GET("/categories/:key/products", h.Catalog.ListCategoryProducts)

	cart := NewDomainGroup("cart", "/cart").Use(middleware.CartSession())
	cart.GET("", h.Cart.Get)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/toggle", h.Cart.Toggle)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:product_id", h.Cart.UpdateItem)
	cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
	cart.PUT("/customer", h.Cart.SetCustomer)
	cart.DELETE("/customer", h.Cart.ClearCustomer)

	checkout := NewDomainGroup("checkout", "/checkout").
		Use(middleware.CartSession(middleware.WithSessionQuery(middleware.SessionQueryParam)))
	checkout.POST("", h.Checkout.Checkout)
	checkout.GET("/whatsapp", h.Checkout.Redirect)

	contact := NewDomainGroup("contact", "/contact")
	contact.POST("", h.Checkout.Contact)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	r := NewRouter(engine, opts...)
	r.Register(catalog, cart, checkout, contact, system)
	r.Setup()
	return r
}
