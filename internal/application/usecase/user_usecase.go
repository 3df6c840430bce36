package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamagardy/mandoubi-api/internal/application/auth"
	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

// UserUseCase admin member management: list, create, edit, delete, and the
// single-capability permission toggle.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase builds the use case.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// requireAdmin loads the actor and checks the admin role.
func (uc *UserUseCase) requireAdmin(ctx context.Context, actorID string) (*entity.User, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return actor, nil
}

// Get returns one user. Members may only fetch themselves.
func (uc *UserUseCase) Get(ctx context.Context, actorID, targetID string) (*dto.UserResponse, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	if !actor.IsAdmin() && actorID != targetID {
		return nil, domain.ErrForbidden
	}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(target), nil
}

// List returns all users (admin only).
func (uc *UserUseCase) List(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	if _, err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *auth.ToUserResponse(&users[i]))
	}
	return out, nil
}

// Create adds a member or admin account (admin only).
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateMemberRequest) (*dto.UserResponse, error) {
	if _, err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 {
		return nil, domain.ErrValidation
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleMember
	case entity.RoleAdmin, entity.RoleMember:
	default:
		return nil, domain.ErrValidation
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Permissions:  permission.DefaultMemberSet(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update edits role, name and the permission map (admin only). A target
// holding the admin role keeps the derived all-true permission set; any
// permissions supplied for it are ignored rather than stored.
func (uc *UserUseCase) Update(ctx context.Context, actorID, targetID string, in dto.UpdateMemberRequest) (*dto.UserResponse, error) {
	if _, err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		target.Name = *in.Name
	}
	if in.Role != nil {
		switch *in.Role {
		case entity.RoleAdmin, entity.RoleMember:
			target.Role = *in.Role
		default:
			return nil, domain.ErrValidation
		}
	}
	if in.Permissions != nil && !target.IsAdmin() {
		target.Permissions = *in.Permissions
	}
	target.UpdatedAt = time.Now()

	if err := uc.userRepo.UpdateProfile(ctx, target); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(target), nil
}

// SetPermission toggles one capability on the target (admin only). Changing
// an admin target is refused: admin permissions are fixed, not independently
// toggleable.
func (uc *UserUseCase) SetPermission(ctx context.Context, actorID, targetID string, in dto.SetPermissionRequest) (*dto.UserResponse, error) {
	if _, err := uc.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if in.Capability == "" {
		return nil, domain.ErrValidation
	}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if target.IsAdmin() {
		return nil, domain.ErrAdminLocked
	}

	if target.Permissions == nil {
		target.Permissions = map[string]bool{}
	}
	target.Permissions[in.Capability] = in.Value
	target.UpdatedAt = time.Now()

	if err := uc.userRepo.UpdateProfile(ctx, target); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(target), nil
}

// Delete removes a user and the linked identity (admin only).
func (uc *UserUseCase) Delete(ctx context.Context, actorID, targetID string) error {
	if _, err := uc.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, targetID)
}
