// Package order turns a cart or a single product plus the customer's form
// into a prefilled messaging link. Nothing is stored: the link is the order.
package order

import (
	"context"
	"errors"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/logging"
	"dermayooth-storefront/internal/metrics"
	"go.uber.org/zap"
)

// ErrEmptyCart is returned when checking out a cart with no lines.
var ErrEmptyCart = errors.New("order: cart is empty")

const (
	StateSuccess = "success"
	TargetBlank  = "_blank"
)

// Handoff kinds, used for metrics and logs.
const (
	KindCart       = "cart"
	KindQuickOrder = "quick_order"
	KindQuote      = "quote"
	KindContact    = "contact"
)

// ContactForm is the contact page form.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Result tells the client where to send the shopper. The client opens
// RedirectURL in Target and switches to State.
type Result struct {
	State       string `json:"state"`
	RedirectURL string `json:"redirectUrl"`
	Target      string `json:"target"`
	Message     string `json:"message"`
}

// CartStore is the part of the cart the checkout needs.
type CartStore interface {
	Items() []domain.CartLine
	ClearCart(ctx context.Context)
}

type Config struct {
	// OrdersPhone receives cart orders and contact messages.
	OrdersPhone string
	// ProductPhone receives quick orders and quote requests from product pages.
	ProductPhone string
}

type Service struct {
	cfg    Config
	logger *zap.Logger
}

func NewService(cfg Config, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logging.OrNop(logger)}
}

// CheckoutCart formats the cart into an order message and clears the cart.
// The cart is cleared as soon as the link is built: whether the shopper
// actually sends the message is not observable from here.
func (s *Service) CheckoutCart(ctx context.Context, store CartStore, details domain.CustomerDetails) (Result, error) {
	if err := validateDetails(details, true); err != nil {
		return Result{}, err
	}
	lines := store.Items()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	msg := FormatCartMessage(lines, details)
	res := s.result(KindCart, s.cfg.OrdersPhone, msg)
	store.ClearCart(ctx)

	s.logger.Info("cart handed off",
		zap.Int("lines", len(lines)),
		zap.Int("units", cart.ItemCount(lines)),
	)
	return res, nil
}

// QuickOrder builds an order link for one product. The cart is untouched.
func (s *Service) QuickOrder(ctx context.Context, p domain.Product, quantity int, details domain.CustomerDetails) (Result, error) {
	if err := validateDetails(details, true); err != nil {
		return Result{}, err
	}
	quantity = atLeastOne(quantity)
	res := s.result(KindQuickOrder, s.cfg.ProductPhone, FormatQuickOrderMessage(p, quantity, details))
	s.logger.Info("quick order handed off", zap.String("product_id", p.ID), zap.Int("quantity", quantity))
	return res, nil
}

// RequestQuote builds a quote request link for one product.
func (s *Service) RequestQuote(ctx context.Context, p domain.Product, quantity int, details domain.CustomerDetails) (Result, error) {
	if err := validateDetails(details, false); err != nil {
		return Result{}, err
	}
	quantity = atLeastOne(quantity)
	res := s.result(KindQuote, s.cfg.ProductPhone, FormatQuoteMessage(p, quantity, details))
	s.logger.Info("quote request handed off", zap.String("product_id", p.ID), zap.Int("quantity", quantity))
	return res, nil
}

// Contact builds a link carrying the contact form.
func (s *Service) Contact(ctx context.Context, form ContactForm) (Result, error) {
	if err := validateStruct(form, nil); err != nil {
		return Result{}, err
	}
	return s.result(KindContact, s.cfg.OrdersPhone, FormatContactMessage(form)), nil
}

func (s *Service) result(kind, phone, msg string) Result {
	metrics.OrderHandoffsTotal.WithLabelValues(kind).Inc()
	return Result{
		State:       StateSuccess,
		RedirectURL: HandoffURL(phone, msg),
		Target:      TargetBlank,
		Message:     msg,
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
