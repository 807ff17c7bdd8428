package domain

import "time"

// Product statuses. Only active products are visible on the storefront.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDraft    = "draft"
)

type ProductSpecifications struct {
	Size      string `json:"size,omitempty"`
	SkinType  string `json:"skinType,omitempty"`
	ShelfLife string `json:"shelfLife,omitempty"`
	MadeIn    string `json:"madeIn,omitempty"`
}

// Product is a catalog entry. Price is the display string shown to shoppers
// (for example "₹1,499"); numeric values are derived from it when needed.
type Product struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	ShortDescription string                `json:"shortDescription"`
	LongDescription  string                `json:"longDescription,omitempty"`
	Price            string                `json:"price"`
	Category         string                `json:"category"`
	Status           string                `json:"status"`
	Benefits         []string              `json:"benefits"`
	Ingredients      string                `json:"ingredients,omitempty"`
	Directions       string                `json:"directions,omitempty"`
	Specifications   ProductSpecifications `json:"specifications"`
	Images           []string              `json:"images"`
	Featured         bool                  `json:"featured"`
	Order            int                   `json:"order"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// Active reports whether the product may be shown to shoppers.
func (p Product) Active() bool {
	return p.Status == ProductStatusActive
}

// PrimaryImage returns the first image or the storefront placeholder.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img != "" {
			return img
		}
	}
	return PlaceholderImage
}

// PlaceholderImage is used for products without images.
const PlaceholderImage = "/placeholder.svg"

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Featured *bool
	Limit    int
}
