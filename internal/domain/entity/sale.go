package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Visit statuses for a Sale.
const (
	StatusVisited    = "visited"
	StatusNotVisited = "not-visited"
)

// SaleItem is one line of a sale. Price is the unit price captured at sale
// time (the catalog price may change later). Bonus is a giveaway quantity
// worth of value that does NOT count toward the sale total.
type SaleItem struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"` // >= 1
	Bonus    decimal.Decimal `json:"bonus"`    // >= 0
}

// Sale is one customer visit with its sold items. TotalPrice is denormalized
// and must always equal the sum of Price*Quantity over Items; every item
// mutation recomputes it before persisting.
type Sale struct {
	ID           string
	UserID       string // owning seller
	CustomerName string
	Items        []SaleItem
	TotalPrice   decimal.Decimal
	Date         time.Time
	Note         string
	Status       string // visited, not-visited
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComputeTotal returns the sum of Price*Quantity across items. Bonus amounts
// are excluded.
func ComputeTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// RecomputeTotal refreshes the denormalized total from the current items.
func (s *Sale) RecomputeTotal() {
	s.TotalPrice = ComputeTotal(s.Items)
}
