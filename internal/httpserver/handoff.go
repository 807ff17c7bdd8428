package httpserver

import (
	"context"
	"net/http"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/order"
	"github.com/gin-gonic/gin"
)

type checkoutResponse struct {
	order.Result
	Cart cartView `json:"cart"`
}

type productOrderRequest struct {
	domain.CustomerDetails
	Quantity int `json:"quantity"`
}

// checkout hands the cart off to the orders line. On success the cart is
// already empty when the client opens the link.
func (h *handlers) checkout(c *gin.Context) {
	var details domain.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	var res order.Result
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		var err error
		res, err = h.deps.OrderSvc.CheckoutCart(c.Request.Context(), s, details)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutResponse{Result: res, Cart: toCartView(lines, stepSuccess)})
}

func (h *handlers) quickOrder(c *gin.Context) {
	h.productHandoff(c, h.deps.OrderSvc.QuickOrder)
}

func (h *handlers) requestQuote(c *gin.Context) {
	h.productHandoff(c, h.deps.OrderSvc.RequestQuote)
}

type productHandoffFunc func(ctx context.Context, p domain.Product, quantity int, details domain.CustomerDetails) (order.Result, error)

func (h *handlers) productHandoff(c *gin.Context, fn productHandoffFunc) {
	var req productOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	res, err := fn(c.Request.Context(), *p, req.Quantity, req.CustomerDetails)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) contact(c *gin.Context) {
	var form order.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	res, err := h.deps.OrderSvc.Contact(c.Request.Context(), form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
