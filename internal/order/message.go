package order

import (
	"strconv"
	"strings"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
)

// lineBreak is how a newline is written in a handoff message. The message
// travels as a URL query value, so it is stored already encoded.
const lineBreak = "%0A"

var fieldEscaper = strings.NewReplacer(
	"%", "%25",
	"\r\n", lineBreak,
	"\n", lineBreak,
	"\r", lineBreak,
)

// field makes user or catalog text safe to splice into a message.
func field(s string) string {
	return fieldEscaper.Replace(s)
}

type messageBuilder struct {
	b strings.Builder
}

func (m *messageBuilder) line(parts ...string) {
	for _, p := range parts {
		m.b.WriteString(p)
	}
	m.b.WriteString(lineBreak)
}

func (m *messageBuilder) blank() {
	m.b.WriteString(lineBreak)
}

func (m *messageBuilder) raw(s string) {
	m.b.WriteString(s)
}

func (m *messageBuilder) String() string {
	return m.b.String()
}

func (m *messageBuilder) customer(d domain.CustomerDetails, withAddress bool) {
	m.line("*Customer Details:*")
	m.line("Name: ", field(d.Name))
	m.line("Email: ", field(d.Email))
	m.line("Phone: ", field(d.Phone))
	if withAddress {
		m.line("Address: ", field(d.Address))
	}
	m.blank()
	m.line("*Message:*")
	m.raw(field(d.Message))
}

// FormatCartMessage renders the whole cart as an order request:
// an itemised list, the subtotal with thousands separators, the customer
// block and the free-text message.
func FormatCartMessage(lines []domain.CartLine, d domain.CustomerDetails) string {
	var m messageBuilder
	m.line("*New Order from Cart*")
	m.blank()
	m.line("*Items:*")
	for i, l := range lines {
		m.line(strconv.Itoa(i+1), ". ", field(l.Name), " - ", field(l.UnitPrice), " x ", strconv.Itoa(l.Quantity))
	}
	m.blank()
	m.line("*Total:* ₹", cart.FormatAmount(cart.Subtotal(lines)))
	m.blank()
	m.customer(d, true)
	return m.String()
}

// FormatQuickOrderMessage renders a single-product order request.
func FormatQuickOrderMessage(p domain.Product, quantity int, d domain.CustomerDetails) string {
	var m messageBuilder
	m.line("*New Order Request*")
	m.blank()
	m.line("*Product:* ", field(p.Name))
	m.line("*Price:* ", field(p.Price))
	m.line("*Quantity:* ", strconv.Itoa(quantity))
	m.blank()
	m.customer(d, true)
	return m.String()
}

// FormatQuoteMessage renders a bulk quote request. Quotes carry no address.
func FormatQuoteMessage(p domain.Product, quantity int, d domain.CustomerDetails) string {
	var m messageBuilder
	m.line("*New Quote Request*")
	m.blank()
	m.line("*Product:* ", field(p.Name))
	m.line("*Quantity:* ", strconv.Itoa(quantity))
	m.blank()
	m.customer(d, false)
	return m.String()
}

// FormatContactMessage renders the contact page form.
func FormatContactMessage(c ContactForm) string {
	var m messageBuilder
	m.line("*Contact Form Submission*")
	m.blank()
	m.line("*Name:* ", field(c.Name))
	m.line("*Email:* ", field(c.Email))
	m.line("*Phone:* ", field(c.Phone))
	m.line("*Subject:* ", field(c.Subject))
	m.blank()
	m.line("*Message:*")
	m.raw(field(c.Message))
	return m.String()
}
