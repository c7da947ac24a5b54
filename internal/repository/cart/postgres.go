package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/storefront/cart"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) Load(ctx context.Context, sessionKey string) (*Stored, error) {
	var (
		code     *string
		discount *int
	)
	err := r.pool.QueryRow(ctx, `
SELECT coupon_code, coupon_discount
FROM carts
WHERE session_key = $1
`, sessionKey).Scan(&code, &discount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Stored{}, nil
		}
		r.logger.Printf("cart repo: load session=%s error=%v", sessionKey, err)
		return nil, err
	}

	out := &Stored{}
	if code != nil && discount != nil {
		out.Coupon = &domain.Coupon{Code: *code, Discount: *discount}
	}

	rows, err := r.pool.Query(ctx, `
SELECT quantity, snapshot
FROM cart_lines
WHERE session_key = $1
ORDER BY position ASC
`, sessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qty  int
			line cart.Line
		)
		if err := rows.Scan(&qty, &line); err != nil {
			return nil, err
		}
		line.Quantity = qty
		out.Lines = append(out.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("cart repo: load session=%s lines=%d", sessionKey, len(out.Lines))
	return out, nil
}

// Save replaces the stored lines and coupon in one transaction.
func (r *postgresRepo) Save(ctx context.Context, sessionKey string, s Stored) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var (
		code     *string
		discount *int
	)
	if s.Coupon != nil {
		code = &s.Coupon.Code
		discount = &s.Coupon.Discount
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO carts (session_key, coupon_code, coupon_discount, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (session_key) DO UPDATE SET
    coupon_code = EXCLUDED.coupon_code,
    coupon_discount = EXCLUDED.coupon_discount,
    updated_at = now()
`, sessionKey, code, discount); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE session_key = $1`, sessionKey); err != nil {
		return err
	}

	if len(s.Lines) > 0 {
		batch := &pgx.Batch{}
		for i, line := range s.Lines {
			batch.Queue(`
INSERT INTO cart_lines (session_key, position, product_id, quantity, snapshot)
VALUES ($1, $2, $3, $4, $5)
`, sessionKey, i, line.ProductID, line.Quantity, line)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			r.logger.Printf("cart repo: save lines session=%s error=%v", sessionKey, err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("cart repo: saved session=%s lines=%d", sessionKey, len(s.Lines))
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionKey string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE session_key = $1`, sessionKey)
	return err
}
