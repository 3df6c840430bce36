package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// UserRepository is the persistence port for users. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// UpdateProfile persists role, permissions and name.
	UpdateProfile(ctx context.Context, user *entity.User) error
	// SetTarget writes one month index of the user's target map, leaving the
	// other indices untouched. The write is atomic per user record.
	SetTarget(ctx context.Context, userID string, monthIndex int, value decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
