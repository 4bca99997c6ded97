package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sizes is the closed set of jersey sizes the store sells.
var Sizes = []string{"P", "M", "G", "GG"}

func ValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Team          string           `json:"team"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Images        []string         `json:"images"`
	Sizes         []string         `json:"sizes"`
	Stock         int              `json:"stock"`
	Rating        decimal.Decimal  `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	IsPromotion   bool             `json:"is_promotion"`
	Category      string           `json:"category"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Category      string
	Team          string
	PromotionOnly bool
	Search        string
}
