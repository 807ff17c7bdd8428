package httpserver

import (
	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
)

// Checkout steps shown by the cart page.
const (
	stepCart    = "cart"
	stepSuccess = "success"
)

type cartView struct {
	Items             []cartItemView `json:"items"`
	Subtotal          int64          `json:"subtotal"`
	SubtotalFormatted string         `json:"subtotalFormatted"`
	ItemCount         int            `json:"itemCount"`
	Empty             bool           `json:"empty"`
	EmptyPrompt       *emptyPrompt   `json:"emptyPrompt,omitempty"`
	Step              string         `json:"step"`
}

type cartItemView struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Price              string `json:"price"`
	Image              string `json:"image"`
	Quantity           int    `json:"quantity"`
	LineTotal          int64  `json:"lineTotal"`
	LineTotalFormatted string `json:"lineTotalFormatted"`
	CanDecrement       bool   `json:"canDecrement"`
}

type emptyPrompt struct {
	Message string `json:"message"`
	Label   string `json:"label"`
	Href    string `json:"href"`
}

func toCartView(lines []domain.CartLine, step string) cartView {
	items := make([]cartItemView, 0, len(lines))
	for _, l := range lines {
		total := cart.LineTotal(l)
		image := l.Image
		if image == "" {
			image = domain.PlaceholderImage
		}
		items = append(items, cartItemView{
			ID:                 l.ProductID,
			Name:               l.Name,
			Price:              l.UnitPrice,
			Image:              image,
			Quantity:           l.Quantity,
			LineTotal:          total,
			LineTotalFormatted: "₹" + cart.FormatAmount(total),
			CanDecrement:       cart.CanDecrement(l),
		})
	}

	subtotal := cart.Subtotal(lines)
	view := cartView{
		Items:             items,
		Subtotal:          subtotal,
		SubtotalFormatted: "₹" + cart.FormatAmount(subtotal),
		ItemCount:         cart.ItemCount(lines),
		Empty:             len(lines) == 0,
		Step:              step,
	}
	if view.Empty && step != stepSuccess {
		view.EmptyPrompt = &emptyPrompt{
			Message: "Your cart is empty",
			Label:   "Browse Products",
			Href:    "/products",
		}
	}
	return view
}
