package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// SaleItemRequest one line of a new sale.
type SaleItemRequest struct {
	ItemID   string          `json:"itemId"`
	Quantity int             `json:"quantity"`
	Bonus    decimal.Decimal `json:"bonus"`
}

// CreateSaleRequest new sale entry. The server prices the lines from the
// catalog and computes the total; client-supplied totals are ignored.
type CreateSaleRequest struct {
	CustomerName string            `json:"customerName"`
	Items        []SaleItemRequest `json:"items"`
	Date         time.Time         `json:"date"`
	Note         string            `json:"note"`
}

// UpdateSaleItemRequest edit of one line of an existing sale. Nil fields are
// left unchanged; each change is permission-gated.
type UpdateSaleItemRequest struct {
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
	Bonus    *decimal.Decimal `json:"bonus"`
}

// UpdateSaleStatusRequest visit-status change.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"` // visited | not-visited
}

// SaleResponse public view of a sale.
type SaleResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	CustomerName string            `json:"customerName"`
	Items        []entity.SaleItem `json:"items"`
	TotalPrice   decimal.Decimal   `json:"totalPrice"`
	Date         time.Time         `json:"date"`
	Note         string            `json:"note"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// SaleListResponse listing payload.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Total int            `json:"total"`
}

// ToSaleResponse maps the entity.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	status := s.Status
	if status == "" {
		status = entity.StatusNotVisited
	}
	return SaleResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		CustomerName: s.CustomerName,
		Items:        s.Items,
		TotalPrice:   s.TotalPrice,
		Date:         s.Date,
		Note:         s.Note,
		Status:       status,
		CreatedAt:    s.CreatedAt,
	}
}
