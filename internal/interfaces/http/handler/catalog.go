package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/respawnadega/storefront/internal/application/catalog"
)

// CatalogHandler serves products and categories
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts godoc
// @Summary      Browse products
// @Description  Filters by search term, category and price range, then sorts. Unavailable products are never listed.
// @Tags         catalog
// @Produce      json
// @Param        search     query string false "Search in name and description"
// @Param        category   query string false "Category id, or all"
// @Param        min_price  query string false "Minimum price"
// @Param        max_price  query string false "Maximum price"
// @Param        sort       query string false "name, price-asc, price-desc or rating"
// @Param        match_tags query bool   false "Also search brand and tags"
// @Success      200 {object} dto.Response{data=catalogapp.BrowseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q catalogapp.BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.catalog.Browse(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, resp.Total)
}

// ListFeaturedProducts returns the products highlighted on the home page
func (h *CatalogHandler) ListFeaturedProducts(c *gin.Context) {
	products, err := h.catalog.ListFeaturedProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        key path string true "Product id"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{key} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListCategories returns every category
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, categories, len(categories))
}

// ListFeaturedCategories returns the categories highlighted on the home page
func (h *CatalogHandler) ListFeaturedCategories(c *gin.Context) {
	categories, err := h.catalog.ListFeaturedCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, categories, len(categories))
}

// GetCategory returns a single category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalog.GetCategory(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// ListCategoryProducts returns the products of a category, unfiltered
func (h *CatalogHandler) ListCategoryProducts(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	if _, err := h.catalog.GetCategory(ctx, key); err != nil {
		h.HandleError(c, err)
		return
	}
	products, err := h.catalog.ListProductsByCategory(ctx, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}
