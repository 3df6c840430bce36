package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// SaleRepository is the persistence port for sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Sale, error)
	ListAll(ctx context.Context) ([]entity.Sale, error)
	// ReplaceItems writes the item list together with the recomputed total
	// in a single statement, keeping the denormalized total consistent even
	// under repeated or out-of-order delivery.
	ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, saleID, status string) error
	Delete(ctx context.Context, saleID string) error
	// DeleteAll wipes the collection (admin reset).
	DeleteAll(ctx context.Context) error
}
