package payments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

type Repository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]SalesOrderPayment, error)
	Get(ctx context.Context, id int64) (SalesOrderPayment, error)
	Create(ctx context.Context, p SalesOrderPayment) (SalesOrderPayment, error)
	// UpdateCompleted rewrites a payment only while it is COMPLETED; zero
	// affected rows means the payment is gone or already voided.
	UpdateCompleted(ctx context.Context, p SalesOrderPayment) (int64, error)
	// VoidCompleted is the one-way COMPLETED to VOIDED transition, guarded
	// the same way.
	VoidCompleted(ctx context.Context, id int64) (int64, error)
}

const paymentColumns = `id, order_id, payment_method_id, amount, reference, status, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListByOrder(ctx context.Context, orderID int64) ([]SalesOrderPayment, error) {
	return db.Many[SalesOrderPayment](ctx, r.pool,
		`SELECT `+paymentColumns+` FROM sales_order_payments
		 WHERE order_id = $1 ORDER BY id`, orderID)
}

func (r *repository) Get(ctx context.Context, id int64) (SalesOrderPayment, error) {
	return db.One[SalesOrderPayment](ctx, r.pool,
		`SELECT `+paymentColumns+` FROM sales_order_payments WHERE id = $1`, id)
}

func (r *repository) Create(ctx context.Context, p SalesOrderPayment) (SalesOrderPayment, error) {
	return db.One[SalesOrderPayment](ctx, r.pool,
		`INSERT INTO sales_order_payments (order_id, payment_method_id, amount, reference, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 RETURNING `+paymentColumns,
		p.OrderID, p.PaymentMethodID, p.Amount, p.Reference, p.Status)
}

func (r *repository) UpdateCompleted(ctx context.Context, p SalesOrderPayment) (int64, error) {
	return db.Exec(ctx, r.pool,
		`UPDATE sales_order_payments
		 SET payment_method_id = $2, amount = $3, reference = $4, updated_at = clock_timestamp()
		 WHERE id = $1 AND status = $5`,
		p.ID, p.PaymentMethodID, p.Amount, p.Reference, PaymentStatusCompleted)
}

func (r *repository) VoidCompleted(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool,
		`UPDATE sales_order_payments
		 SET status = $2, updated_at = clock_timestamp()
		 WHERE id = $1 AND status = $3`,
		id, PaymentStatusVoided, PaymentStatusCompleted)
}
