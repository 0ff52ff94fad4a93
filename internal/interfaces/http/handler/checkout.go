package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/respawnadega/storefront/internal/application/checkout"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler turns carts and contact forms into WhatsApp links
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout godoc
// @Summary      Check out the cart
// @Description  Formats the order message and returns it with the WhatsApp link. The cart is kept.
// @Tags         checkout
// @Produce      json
// @Param        X-Cart-Session header string true "Cart session (UUID)"
// @Success      200 {object} dto.Response{data=checkoutapp.CheckoutResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "Cart is empty"
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	resp, err := h.checkout.Checkout(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Redirect godoc
// @Summary      Redirect to WhatsApp
// @Description  Sends the browser straight to the order link. Navigations pass the session as a query parameter.
// @Tags         checkout
// @Param        session query string false "Cart session (UUID)"
// @Success      303
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "Cart is empty"
// @Router       /checkout/whatsapp [get]
func (h *CheckoutHandler) Redirect(c *gin.Context) {
	resp, err := h.checkout.Checkout(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, resp.Link)
}

// Contact godoc
// @Summary      Send a contact message
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.ContactRequest true "Contact form"
// @Success      200 {object} dto.Response{data=checkoutapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contact [post]
func (h *CheckoutHandler) Contact(c *gin.Context) {
	var req checkoutapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.Success(c, h.checkout.Contact(c.Request.Context(), req))
}
