package httpserver

import (
	"errors"
	"net/http"

	"dermayooth-storefront/internal/catalog"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/order"
	cartsvc "dermayooth-storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *handlers) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Message: "please check the highlighted fields", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "product not found"})
	case errors.Is(err, order.ErrEmptyCart):
		c.JSON(http.StatusConflict, errorResponse{Code: "EMPTY_CART", Message: "your cart is empty"})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, cartsvc.ErrNoActions),
		errors.Is(err, cartsvc.ErrUnsupportedAction):
		c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, catalog.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Code: "CATALOG_UNAVAILABLE", Message: "catalog is temporarily unavailable"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Message: msg})
}
