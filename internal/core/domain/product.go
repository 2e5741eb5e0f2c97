package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int
	Name        string
	Category    string
	Price       decimal.Decimal
	Image       string
	Rating      float64
	Description string
}
