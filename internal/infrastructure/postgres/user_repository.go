package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements the UserRepository port on PostgreSQL. The permission
// map and the monthly target map are JSONB columns on the user row.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, password_hash, name, role, permissions, monthly_targets, created_at, updated_at`

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	perms, targets, err := marshalUserMaps(user)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		perms, targets, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "get user by email")
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

// UpdateProfile persists role, permissions and name.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	perms, _, err := marshalUserMaps(user)
	if err != nil {
		return err
	}
	query := `
		UPDATE users SET name = $2, role = $3, permissions = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.pool.Exec(ctx, query, user.ID, user.Name, user.Role, perms, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetTarget writes one month index of the target map. jsonb_set touches only
// that key, so the write is a single atomic row update.
func (r *UserRepo) SetTarget(ctx context.Context, userID string, monthIndex int, value decimal.Decimal) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal target: %w", err)
	}
	query := `
		UPDATE users
		SET monthly_targets = jsonb_set(monthly_targets, ARRAY[$2::text], $3::jsonb),
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, fmt.Sprintf("%d", monthIndex), raw)
	if err != nil {
		return fmt.Errorf("set target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes a user. Sales cascade via the FK.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var perms, targets []byte
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&perms, &targets, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &u.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	if len(targets) > 0 {
		if err := json.Unmarshal(targets, &u.MonthlyTargets); err != nil {
			return nil, fmt.Errorf("decode targets: %w", err)
		}
	}
	return &u, nil
}

func marshalUserMaps(user *entity.User) (perms, targets []byte, err error) {
	p := user.Permissions
	if p == nil {
		p = map[string]bool{}
	}
	perms, err = json.Marshal(p)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal permissions: %w", err)
	}
	t := user.MonthlyTargets
	if t == nil {
		t = map[int]decimal.Decimal{}
	}
	targets, err = json.Marshal(t)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal targets: %w", err)
	}
	return perms, targets, nil
}
