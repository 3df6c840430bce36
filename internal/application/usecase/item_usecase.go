package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

// ItemUseCase catalog management. Everyone reads the catalog; writes are
// admin only.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

// NewItemUseCase builds the use case.
func NewItemUseCase(itemRepo repository.ItemRepository, userRepo repository.UserRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, userRepo: userRepo}
}

func (uc *ItemUseCase) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrUserNotFound
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// List returns the catalog ordered by name.
func (uc *ItemUseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.ToItemResponse(&items[i]))
	}
	return &dto.ItemListResponse{Items: out, Total: len(out)}, nil
}

// Get returns one item.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// Create adds a catalog item (admin only).
func (uc *ItemUseCase) Create(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Group:       in.Group,
		Verified:    in.Verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// Update edits a catalog item (admin only). Nil fields stay unchanged.
func (uc *ItemUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrValidation
		}
		item.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrValidation
		}
		item.Price = *in.Price
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Group != nil {
		item.Group = *in.Group
	}
	if in.Verified != nil {
		item.Verified = *in.Verified
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// Delete removes a catalog item (admin only). Existing sale lines keep their
// denormalized snapshot of the item.
func (uc *ItemUseCase) Delete(ctx context.Context, actorID, id string) error {
	if err := uc.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}
