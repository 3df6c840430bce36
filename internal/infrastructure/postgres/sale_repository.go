package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements the SaleRepository port on PostgreSQL. The line items
// are a JSONB column next to the denormalized total, so ReplaceItems updates
// both in one statement and a replayed update lands on the same row state.
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository builds the persistence adapter for sales.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

const saleColumns = `id, user_id, customer_name, items, total_price, date, note, status, created_at, updated_at`

// Create persists a new sale.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.pool.Exec(ctx, query,
		sale.ID, sale.UserID, sale.CustomerName, items, sale.TotalPrice,
		sale.Date, sale.Note, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID fetches one sale.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByUser returns one user's sales, newest first.
func (r *SaleRepo) ListByUser(ctx context.Context, userID string) ([]entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, userID)
}

// ListAll returns every sale, newest first.
func (r *SaleRepo) ListAll(ctx context.Context) ([]entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC`
	return r.list(ctx, query)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]entity.Sale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// ReplaceItems writes the full item list and the recomputed total in a
// single statement.
func (r *SaleRepo) ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem, total decimal.Decimal) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		UPDATE sales SET items = $2, total_price = $3, updated_at = now()
		WHERE id = $1`
	_, err = r.pool.Exec(ctx, query, saleID, raw, total)
	if err != nil {
		return fmt.Errorf("replace sale items: %w", err)
	}
	return nil
}

// UpdateStatus changes the visit status.
func (r *SaleRepo) UpdateStatus(ctx context.Context, saleID, status string) error {
	query := `UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, saleID, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// Delete removes one sale.
func (r *SaleRepo) Delete(ctx context.Context, saleID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// DeleteAll wipes the sale collection.
func (r *SaleRepo) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sales`)
	if err != nil {
		return fmt.Errorf("delete all sales: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var items []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.CustomerName, &items, &s.TotalPrice,
		&s.Date, &s.Note, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("decode sale items: %w", err)
		}
	}
	return &s, nil
}
