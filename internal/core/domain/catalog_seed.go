package domain

import "github.com/shopspring/decimal"

// DefaultProducts is the storefront's built-in product list, used when no
// catalog database is configured and by the seed command.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Pro Football 2024",
			Category:    "Football",
			Price:       decimal.RequireFromString("45.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/ff4757?text=Pro+Football",
			Rating:      5,
			Description: "Professional grade football designed for maximum control and durability across all weather conditions.",
		},
		{
			ID:          2,
			Name:        "Cricket Bat Willow",
			Category:    "Cricket",
			Price:       decimal.RequireFromString("120.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/2ed573?text=Cricket+Bat",
			Rating:      4.5,
			Description: "Premium English Willow bat for power hitters. Lightweight pickup and massive edges.",
		},
		{
			ID:          3,
			Name:        "Speed Runner Shoes",
			Category:    "Running",
			Price:       decimal.RequireFromString("85.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/00a8ff?text=Running+Shoes",
			Rating:      4.5,
			Description: "Lightweight running shoes with superior cushioning and energy return for long distance running.",
		},
		{
			ID:          4,
			Name:        "Dumbbell Set 20kg",
			Category:    "Gym",
			Price:       decimal.RequireFromString("60.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/ffa502?text=Dumbbells",
			Rating:      5,
			Description: "Adjustable dumbbell set perfect for home workouts. Includes 2 bars and weight plates.",
		},
		{
			ID:          5,
			Name:        "Basketball Pro",
			Category:    "Basketball",
			Price:       decimal.RequireFromString("35.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/e15f41?text=Basketball",
			Rating:      4,
			Description: "Official size and weight basketball with excellent grip for indoor and outdoor courts.",
		},
		{
			ID:          6,
			Name:        "Yoga Mat Premium",
			Category:    "Gym",
			Price:       decimal.RequireFromString("25.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/a29bfe?text=Yoga+Mat",
			Rating:      4.5,
			Description: "Non-slip yoga mat with extra cushioning for joint support during practice.",
		},
		{
			ID:          7,
			Name:        "Football Jersey",
			Category:    "Clothing",
			Price:       decimal.RequireFromString("40.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/fab1a0?text=Jersey",
			Rating:      5,
			Description: "Breathable fabric jersey to keep you cool during intense matches.",
		},
		{
			ID:          8,
			Name:        "Tennis Racket Elite",
			Category:    "Tennis",
			Price:       decimal.RequireFromString("150.00"),
			Image:       "https://placehold.co/600x600/1e1e1e/fdcb6e?text=Tennis+Racket",
			Rating:      5,
			Description: "Professional tennis racket for precision and power. Used by top athletes.",
		},
	}
}
