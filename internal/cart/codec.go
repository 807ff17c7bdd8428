package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dermayooth-storefront/internal/domain"
)

// storedLine mirrors the persisted JSON. Older records carry numeric ids,
// so the id is decoded loosely and normalised.
type storedLine struct {
	ID       any    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// Encode serialises the cart as a JSON array in line order.
func Encode(lines []domain.CartLine) (string, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted cart. Lines without an id are dropped, stored
// quantities are clamped to [1, MaxQuantity] and duplicate ids are merged so
// the result always satisfies the one-line-per-product rule.
func Decode(raw string) ([]domain.CartLine, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var stored []storedLine
	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(stored))
	index := make(map[string]int, len(stored))
	for _, s := range stored {
		id := NormalizeID(s.ID)
		if id == "" {
			continue
		}
		qty := ClampQuantity(s.Quantity)
		if i, ok := index[id]; ok {
			lines[i].Quantity = ClampQuantity(lines[i].Quantity + qty)
			continue
		}
		index[id] = len(lines)
		lines = append(lines, domain.CartLine{
			ProductID: id,
			Name:      s.Name,
			UnitPrice: s.Price,
			Image:     s.Image,
			Quantity:  qty,
		})
	}
	return lines, nil
}
