package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest first-sign-in registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token plus the signed-in user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse public view of a user. Permissions for admins are always the
// derived all-true set, never the stored map.
type UserResponse struct {
	ID             string                     `json:"id"`
	Email          string                     `json:"email"`
	Name           string                     `json:"name"`
	Role           string                     `json:"role"`
	Permissions    map[string]bool            `json:"permissions"`
	MonthlyTargets map[int]decimal.Decimal    `json:"monthlyTargets"`
	CreatedAt      time.Time                  `json:"createdAt"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}

// CreateMemberRequest admin-created account.
type CreateMemberRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin | member, defaults to member
}

// UpdateMemberRequest admin edit of role and permissions. Nil fields are
// left unchanged.
type UpdateMemberRequest struct {
	Name        *string          `json:"name"`
	Role        *string          `json:"role"`
	Permissions *map[string]bool `json:"permissions"`
}

// SetPermissionRequest single-capability toggle.
type SetPermissionRequest struct {
	Capability string `json:"capability"`
	Value      bool   `json:"value"`
}
