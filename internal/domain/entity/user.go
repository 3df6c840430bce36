package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles for User.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a seller account. Permissions holds per-capability boolean
// grants for members; for admins the stored map is never consulted — admin
// access is re-derived as all-true wherever it is evaluated or displayed.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext in domain after persist
	Name         string
	Role         string          // admin, member
	Permissions  map[string]bool // capability -> granted
	// MonthlyTargets maps month index (0=January .. 11=December) to the
	// sales target in IQD for that month. Missing indices fall back to
	// DefaultMonthlyTarget at read time.
	MonthlyTargets map[int]decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultMonthlyTarget is the fallback sales target (IQD) when an admin has
// not set one for the month.
var DefaultMonthlyTarget = decimal.NewFromInt(13_000_000)

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TargetFor returns the user's target for the month index (0-11), or
// DefaultMonthlyTarget if none is stored.
func (u *User) TargetFor(monthIndex int) decimal.Decimal {
	if t, ok := u.MonthlyTargets[monthIndex]; ok && t.IsPositive() {
		return t
	}
	return DefaultMonthlyTarget
}
