package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog product. Written only by admins; read by sale entry and
// the brochure. Price is the IQD baseline price.
type Item struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Group       string // e.g. "Syrian", "Indian"
	Verified    bool   // sticker flag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
