package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

// SaleUseCase daily sale entry and the permission-gated edits. Every item
// mutation recomputes the denormalized total and persists both in one
// repository call, so replayed updates converge to the same value.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

// NewSaleUseCase builds the use case.
func NewSaleUseCase(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository, userRepo repository.UserRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, itemRepo: itemRepo, userRepo: userRepo}
}

func (uc *SaleUseCase) caller(ctx context.Context, callerID string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Create records a new sale owned by the caller. Lines are priced from the
// catalog at entry time and the total is computed server-side.
func (uc *SaleUseCase) Create(ctx context.Context, callerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerName == "" || len(in.Items) == 0 {
		return nil, domain.ErrValidation
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity < 1 || line.Bonus.IsNegative() {
			return nil, domain.ErrValidation
		}
		catalogItem, err := uc.itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if catalogItem == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.SaleItem{
			ItemID:   catalogItem.ID,
			Name:     catalogItem.Name,
			Price:    catalogItem.Price,
			Quantity: line.Quantity,
			Bonus:    line.Bonus,
		})
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		UserID:       callerID,
		CustomerName: in.CustomerName,
		Items:        items,
		Date:         date,
		Note:         in.Note,
		Status:       entity.StatusNotVisited,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sale.RecomputeTotal()

	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// List returns the sales the caller's scope allows, optionally narrowed by
// an explicitly selected user.
func (uc *SaleUseCase) List(ctx context.Context, callerID, selectedUserID string) (*dto.SaleListResponse, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	sales, err := fetchScoped(ctx, uc.saleRepo, ResolveScope(caller, selectedUserID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, dto.ToSaleResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Sales: out, Total: len(out)}, nil
}

// getVisible loads a sale and checks the caller may see it.
func (uc *SaleUseCase) getVisible(ctx context.Context, caller *entity.User, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	scope := ResolveScope(caller, "")
	if !scope.All && sale.UserID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// UpdateStatus changes the visit status; requires changeVisitStatus.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, callerID, saleID string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !permission.CanAccess(caller, permission.CapChangeVisitStatus) {
		return nil, domain.ErrForbidden
	}
	if in.Status != entity.StatusVisited && in.Status != entity.StatusNotVisited {
		return nil, domain.ErrValidation
	}
	sale, err := uc.getVisible(ctx, caller, saleID)
	if err != nil {
		return nil, err
	}
	if err := uc.saleRepo.UpdateStatus(ctx, sale.ID, in.Status); err != nil {
		return nil, err
	}
	sale.Status = in.Status
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// UpdateItem edits one line of a sale. Price and quantity changes require
// changePrice, bonus changes require changeBonus. The total is recomputed
// and written together with the items.
func (uc *SaleUseCase) UpdateItem(ctx context.Context, callerID, saleID string, itemIndex int, in dto.UpdateSaleItemRequest) (*dto.SaleResponse, error) {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if in.Price == nil && in.Quantity == nil && in.Bonus == nil {
		return nil, domain.ErrValidation
	}
	if (in.Price != nil || in.Quantity != nil) && !permission.CanAccess(caller, permission.CapChangePrice) {
		return nil, domain.ErrForbidden
	}
	if in.Bonus != nil && !permission.CanAccess(caller, permission.CapChangeBonus) {
		return nil, domain.ErrForbidden
	}

	sale, err := uc.getVisible(ctx, caller, saleID)
	if err != nil {
		return nil, err
	}
	if itemIndex < 0 || itemIndex >= len(sale.Items) {
		return nil, domain.ErrNotFound
	}

	it := &sale.Items[itemIndex]
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrValidation
		}
		it.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, domain.ErrValidation
		}
		it.Quantity = *in.Quantity
	}
	if in.Bonus != nil {
		if in.Bonus.IsNegative() {
			return nil, domain.ErrValidation
		}
		it.Bonus = *in.Bonus
	}
	sale.RecomputeTotal()

	if err := uc.saleRepo.ReplaceItems(ctx, sale.ID, sale.Items, sale.TotalPrice); err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// Delete removes a sale; admin only.
func (uc *SaleUseCase) Delete(ctx context.Context, callerID, saleID string) error {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.Delete(ctx, saleID)
}

// ResetAll wipes the sale collection; admin only.
func (uc *SaleUseCase) ResetAll(ctx context.Context, callerID string) error {
	caller, err := uc.caller(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.saleRepo.DeleteAll(ctx)
}
