package order

import (
	"strings"
)

const handoffBase = "https://wa.me/"

// HandoffURL builds the messaging deep link for phone with text prefilled.
// Existing %XX sequences in text (the encoded line breaks) are kept; every
// other byte outside the unreserved set is percent-encoded.
func HandoffURL(phone, text string) string {
	var b strings.Builder
	b.WriteString(handoffBase)
	b.WriteString(digitsOnly(phone))
	if text == "" {
		return b.String()
	}
	b.WriteString("?text=")
	b.WriteString(encodeText(text))
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func encodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		case keepRaw(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func keepRaw(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '*', ':', ',', '(', ')', '!', '\'', '@', '/':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
