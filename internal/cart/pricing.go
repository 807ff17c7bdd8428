package cart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"dermayooth-storefront/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// ParsePrice extracts the numeric value of a display price by dropping every
// character that is not an ASCII digit. Decimal points go too, so "$12.50"
// reads as 1250. Prices are treated as whole currency units throughout the
// storefront and totals must stay consistent with that. Digit runs too long
// for an int64 saturate at math.MaxInt64.
func ParsePrice(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64
	}
	if err != nil {
		return 0
	}
	return n
}

// LineTotal is the parsed unit price times quantity, saturating at
// math.MaxInt64.
func LineTotal(line domain.CartLine) int64 {
	price, qty := ParsePrice(line.UnitPrice), int64(line.Quantity)
	if qty <= 0 || price == 0 {
		return 0
	}
	if price > math.MaxInt64/qty {
		return math.MaxInt64
	}
	return price * qty
}

// Subtotal sums the line totals, saturating at math.MaxInt64.
func Subtotal(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		lt := LineTotal(l)
		if lt > math.MaxInt64-total {
			return math.MaxInt64
		}
		total += lt
	}
	return total
}

// ItemCount is the number of units across all lines.
func ItemCount(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// CanDecrement reports whether the quantity stepper may go down.
func CanDecrement(line domain.CartLine) bool {
	return line.Quantity > 1
}

// FormatAmount renders n with thousands separators, e.g. 3897 -> "3,897".
func FormatAmount(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}
