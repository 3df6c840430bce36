package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// CreateItemRequest new catalog item (admin only).
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"` // IQD
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Group       string          `json:"group"`
	Verified    bool            `json:"verified"`
}

// UpdateItemRequest catalog edit. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	Group       *string          `json:"group"`
	Verified    *bool            `json:"verified"`
}

// ItemResponse public view of a catalog item.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Group       string          `json:"group,omitempty"`
	Verified    bool            `json:"verified"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ItemListResponse listing payload.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ToItemResponse maps the entity.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		ImageURL:    it.ImageURL,
		Group:       it.Group,
		Verified:    it.Verified,
		CreatedAt:   it.CreatedAt,
	}
}
