package domain

// CartLine is one product's presence in a cart. Name, UnitPrice and Image are
// copied when the product is added and are not refreshed from the catalog.
type CartLine struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}
