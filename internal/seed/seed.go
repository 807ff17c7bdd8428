package seed

import (
	"context"
	"fmt"

	"dermayooth-storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Products is the starter catalog. Ids are fixed so repeated runs update in place.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:               "advanced-radiant-day-cream",
			Name:             "Advanced Radiant Day Cream",
			ShortDescription: "Brightening day cream with SPF protection for radiant, youthful skin.",
			LongDescription: "Our Advanced Radiant Day Cream is formulated with cutting-edge ingredients to brighten, protect, and nourish your skin throughout the day. " +
				"Enriched with vitamin C, hyaluronic acid, and broad-spectrum SPF, this cream helps reduce dark spots, fine lines, and environmental damage while providing long-lasting hydration.",
			Price:    "₹1,499",
			Category: "Face Care",
			Status:   domain.ProductStatusActive,
			Images:   []string{"/placeholder.svg?height=400&width=400&text=Day+Cream"},
			Benefits: []string{
				"Brightens and evens skin tone",
				"Provides SPF 30 protection",
				"Reduces appearance of fine lines",
				"Long-lasting hydration",
				"Suitable for all skin types",
			},
			Ingredients: "Aqua, Glycerine, Vitamin C, Hyaluronic Acid, Titanium Dioxide, Zinc Oxide, Natural Extracts",
			Directions:  "Apply evenly to clean face and neck every morning. Massage gently until absorbed. Use daily for best results.",
			Specifications: domain.ProductSpecifications{
				Size: "50ml", SkinType: "All Skin Types", ShelfLife: "24 Months", MadeIn: "India",
			},
			Featured: true,
			Order:    1,
		},
		{
			ID:               "intensive-night-repair-serum",
			Name:             "Intensive Night Repair Serum",
			ShortDescription: "Powerful anti-aging serum for overnight skin renewal and repair.",
			LongDescription: "Transform your skin overnight with our Intensive Night Repair Serum. " +
				"Retinol, peptides and botanical extracts accelerate cell turnover and restore the skin's natural radiance while you sleep.",
			Price:    "₹2,299",
			Category: "Serums",
			Status:   domain.ProductStatusActive,
			Images:   []string{"/placeholder.svg?height=400&width=400&text=Night+Serum"},
			Benefits: []string{
				"Accelerates skin renewal",
				"Reduces fine lines and wrinkles",
				"Improves skin texture",
				"Boosts collagen production",
				"Restores radiance",
			},
			Ingredients: "Aqua, Retinol, Peptide Complex, Botanical Extracts, Hyaluronic Acid, Vitamin E",
			Directions:  "Apply 2-3 drops to clean face before bedtime. Avoid eye area. Use sunscreen during the day.",
			Specifications: domain.ProductSpecifications{
				Size: "30ml", SkinType: "All Skin Types", ShelfLife: "18 Months", MadeIn: "India",
			},
			Featured: true,
			Order:    2,
		},
		{
			ID:               "hydrating-vitamin-c-cleanser",
			Name:             "Hydrating Vitamin C Cleanser",
			ShortDescription: "Gentle yet effective cleanser with vitamin C for bright, clean skin.",
			LongDescription: "Start your skincare routine with our Hydrating Vitamin C Cleanser. " +
				"This gentle formula removes impurities while delivering brightening vitamin C and hydrating ingredients.",
			Price:    "₹899",
			Category: "Cleansers",
			Status:   domain.ProductStatusActive,
			Images:   []string{"/placeholder.svg?height=400&width=400&text=Vitamin+C+Cleanser"},
			Benefits: []string{
				"Gently removes impurities",
				"Brightens skin tone",
				"Maintains skin hydration",
				"Prepares skin for treatments",
				"Suitable for daily use",
			},
			Ingredients: "Aqua, Vitamin C, Gentle Surfactants, Glycerine, Natural Extracts, Aloe Vera",
			Directions:  "Apply to damp skin, massage gently, and rinse with lukewarm water. Use morning and evening.",
			Specifications: domain.ProductSpecifications{
				Size: "150ml", SkinType: "All Skin Types", ShelfLife: "24 Months", MadeIn: "India",
			},
			Order: 3,
		},
	}
}

// Apply upserts the starter catalog. It is idempotent.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	products := Products()
	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
