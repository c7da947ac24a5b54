package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/storefront/orderstatus"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const columns = `id::text, user_id::text, items, customer_info, applied_coupon, subtotal, total, status, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create inserts o. Zero timestamps are filled by the database.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	status := o.Status
	if status == "" {
		status = orderstatus.Pending
	}
	var createdAt, updatedAt any
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt
	}
	if !o.UpdatedAt.IsZero() {
		updatedAt = o.UpdatedAt
	}
	q := `
INSERT INTO orders (user_id, items, customer_info, applied_coupon, subtotal, total, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8::timestamptz, now()), COALESCE($9::timestamptz, now()))
RETURNING ` + columns
	created, err := scanOrder(r.pool.QueryRow(ctx, q,
		o.UserID,
		o.Items,
		o.CustomerInfo,
		o.AppliedCoupon,
		o.Subtotal,
		o.Total,
		string(status),
		createdAt,
		updatedAt,
	))
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user_id=%s items=%d", created.ID, created.UserID, len(created.Items))
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + columns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string, status orderstatus.Status) ([]domain.Order, error) {
	q := `
SELECT ` + columns + `
FROM orders
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC
`
	return r.list(ctx, q, userID, string(status))
}

func (r *postgresRepo) ListAll(ctx context.Context, status orderstatus.Status) ([]domain.Order, error) {
	q := `
SELECT ` + columns + `
FROM orders
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
`
	return r.list(ctx, q, string(status))
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status orderstatus.Status) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("order repo: status id=%s status=%s", id, status)
	return o, nil
}

func (r *postgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: list count=%d", len(result))
	return result, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&o.CustomerInfo,
		&o.AppliedCoupon,
		&o.Subtotal,
		&o.Total,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = orderstatus.Status(status)
	return &o, nil
}
