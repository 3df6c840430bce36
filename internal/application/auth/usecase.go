package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
	"github.com/hamagardy/mandoubi-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase sign-up and login. A configured bootstrap email gets the admin
// role on first sign-in; everyone else starts as a member with the default
// grant. This keeps the original single-identifier bootstrap working while
// admins provision further accounts explicitly.
type UseCase struct {
	userRepo            repository.UserRepository
	jwtCfg              JWTConfig
	bootstrapAdminEmail string
}

// NewUseCase builds the auth use case.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bootstrapAdminEmail string) *UseCase {
	return &UseCase{
		userRepo:            userRepo,
		jwtCfg:              jwtCfg,
		bootstrapAdminEmail: strings.ToLower(strings.TrimSpace(bootstrapAdminEmail)),
	}
}

// Register creates a user on first sign-in: hashes the password with bcrypt
// and persists. Returns ErrEmailAlreadyExists when the email is taken.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 {
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

	role := entity.RoleMember
	if uc.bootstrapAdminEmail != "" && email == uc.bootstrapAdminEmail {
		role = entity.RoleAdmin
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
	return ToUserResponse(user), nil
}

// Login verifies email/password and returns a signed JWT plus the user.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// ToUserResponse maps a user for output. Admin permissions are re-derived as
// the all-true set regardless of what is stored.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	perms := u.Permissions
	if u.IsAdmin() {
		perms = permission.AdminSet()
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Permissions:    perms,
		MonthlyTargets: u.MonthlyTargets,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
