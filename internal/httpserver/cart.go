package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	cartsvc "dermayooth-storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

// addItemRequest carries a line the client already knows. productId may be a
// JSON string or number.
type addItemRequest struct {
	ProductID json.RawMessage `json:"productId"`
	Name      string          `json:"name"`
	Price     string          `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) respondCart(c *gin.Context, lines []domain.CartLine, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(lines, stepCart))
}

func (h *handlers) getCart(c *gin.Context) {
	lines, err := h.deps.CartSvc.Items(c.Request.Context(), sessionID(c))
	h.respondCart(c, lines, err)
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id := cart.NormalizeID(rawID(req.ProductID))
	if id == "" {
		badRequest(c, "productId is required")
		return
	}
	action := cartsvc.Action{
		Action:    "addToCart",
		ProductID: id,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Quantity:  req.Quantity,
	}
	lines, err := h.deps.CartSvc.Update(c.Request.Context(), sessionID(c), cartsvc.UpdateInput{Actions: []cartsvc.Action{action}})
	h.respondCart(c, lines, err)
}

func (h *handlers) addProduct(c *gin.Context) {
	var req quantityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}
	lines, err := h.deps.CartSvc.AddProduct(c.Request.Context(), sessionID(c), c.Param("id"), req.Quantity)
	h.respondCart(c, lines, err)
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartsvc.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	lines, err := h.deps.CartSvc.Update(c.Request.Context(), sessionID(c), req)
	h.respondCart(c, lines, err)
}

func (h *handlers) updateQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	productID := c.Param("productId")
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		s.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
		return nil
	})
	h.respondCart(c, lines, err)
}

func (h *handlers) increment(c *gin.Context) {
	productID := c.Param("productId")
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		s.Increment(c.Request.Context(), productID)
		return nil
	})
	h.respondCart(c, lines, err)
}

func (h *handlers) decrement(c *gin.Context) {
	productID := c.Param("productId")
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		s.Decrement(c.Request.Context(), productID)
		return nil
	})
	h.respondCart(c, lines, err)
}

func (h *handlers) removeItem(c *gin.Context) {
	productID := c.Param("productId")
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		s.RemoveFromCart(c.Request.Context(), productID)
		return nil
	})
	h.respondCart(c, lines, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	lines, err := h.deps.CartSvc.WithCart(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		s.ClearCart(c.Request.Context())
		return nil
	})
	h.respondCart(c, lines, err)
}

// rawID turns a JSON string or number into something NormalizeID accepts.
// Anything else counts as missing.
func rawID(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	switch v.(type) {
	case string, json.Number:
		return v
	}
	return nil
}
