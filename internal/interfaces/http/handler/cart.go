package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/respawnadega/storefront/internal/application/cart"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the cart of the caller's session. Every route expects
// middleware.CartSession to have run.
type CartHandler struct {
	BaseHandler
	carts *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get godoc
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session (UUID); created when missing"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.carts.Get(c.Request.Context(), middleware.GetCartSession(c)))
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Adds quantity units (default 1) of a catalog product. Adding a product already in the cart increases its quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "Product out of stock"
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.carts.AddItem(c.Request.Context(), middleware.GetCartSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem sets the quantity of a cart line; zero removes it
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.carts.UpdateItem(c.Request.Context(), middleware.GetCartSession(c), c.Param("product_id"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetCartSession(c), c.Param("product_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart. Customer info is kept.
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.carts.Clear(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Toggle flips the cart drawer
func (h *CartHandler) Toggle(c *gin.Context) {
	resp, err := h.carts.Toggle(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetCustomer godoc
// @Summary      Save the delivery form
// @Description  Validates and stores the customer's name, phone and delivery address for the order message.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.CustomerRequest true "Customer and address"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/customer [put]
func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req cartapp.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.carts.SetCustomer(c.Request.Context(), middleware.GetCartSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClearCustomer forgets the stored customer info
func (h *CartHandler) ClearCustomer(c *gin.Context) {
	resp, err := h.carts.ClearCustomer(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
