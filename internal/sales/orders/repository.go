package orders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction. Order
	// creation writes the header, lines and charges through it.
	WithTx(ctx context.Context, fn func(Repository) error) error

	List(ctx context.Context, filter ListOrdersFilter, page shared.Pagination) ([]SalesOrder, int, error)
	Get(ctx context.Context, id int64) (SalesOrder, error)
	Create(ctx context.Context, o SalesOrder) (SalesOrder, error)
	Void(ctx context.Context, id, updatedBy int64) (int64, error)
	GenerateDocNumber(ctx context.Context, date time.Time) (string, error)
	CountUserOrders(ctx context.Context, userID int64) (int64, error)

	InsertItem(ctx context.Context, item SalesOrderItem) (SalesOrderItem, error)
	ListItems(ctx context.Context, orderID int64) ([]SalesOrderItem, error)
	InsertCharge(ctx context.Context, charge SalesOrderCharge) (SalesOrderCharge, error)
	ListCharges(ctx context.Context, orderID int64) ([]SalesOrderCharge, error)
}

const orderColumns = `id, doc_number, customer_id, channel_id, location_id, cost_center_id,
	subtotal, discount_total, tax_total, charge_total, total,
	order_status, payment_status, created_by, updated_by, created_at, updated_at`

const orderItemColumns = `id, order_id, item_id, variant_id, name, quantity, unit_price,
	discount_percent, tax_percent, discount_amount, tax_amount, subtotal, total, created_at`

type repository struct {
	q    db.Querier
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{q: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&repository{q: tx})
	})
}

func (r *repository) List(ctx context.Context, filter ListOrdersFilter, page shared.Pagination) ([]SalesOrder, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if filter.ChannelID != nil {
		args = append(args, *filter.ChannelID)
		where += ` AND channel_id = $` + strconv.Itoa(len(args))
	}
	if filter.OrderStatus != "" {
		args = append(args, filter.OrderStatus)
		where += ` AND order_status = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	total, err := db.Count(ctx, r.q, `SELECT COUNT(*) FROM sales_orders`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, page.PerPage, page.Offset())
	rows, err := db.Many[SalesOrder](ctx, r.q,
		`SELECT `+orderColumns+` FROM sales_orders`+where+
			` ORDER BY created_at DESC, id DESC LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *repository) Get(ctx context.Context, id int64) (SalesOrder, error) {
	return db.One[SalesOrder](ctx, r.q,
		`SELECT `+orderColumns+` FROM sales_orders WHERE id = $1`, id)
}

func (r *repository) Create(ctx context.Context, o SalesOrder) (SalesOrder, error) {
	return db.One[SalesOrder](ctx, r.q,
		`INSERT INTO sales_orders (
			doc_number, customer_id, channel_id, location_id, cost_center_id,
			subtotal, discount_total, tax_total, charge_total, total,
			order_status, payment_status, created_by, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		RETURNING `+orderColumns,
		o.DocNumber, o.CustomerID, o.ChannelID, o.LocationID, o.CostCenterID,
		o.Subtotal, o.DiscountTotal, o.TaxTotal, o.ChargeTotal, o.Total,
		o.OrderStatus, o.PaymentStatus, o.CreatedBy, o.UpdatedBy)
}

// Void flips a completed order to cancelled in one guarded statement; the
// status predicate makes a double void affect zero rows.
func (r *repository) Void(ctx context.Context, id, updatedBy int64) (int64, error) {
	return db.Exec(ctx, r.q,
		`UPDATE sales_orders
		 SET order_status = $2, payment_status = $3, updated_by = $4, updated_at = clock_timestamp()
		 WHERE id = $1 AND order_status = $5`,
		id, OrderStatusCancelled, PaymentStatusVoided, updatedBy, OrderStatusCompleted)
}

// GenerateDocNumber yields SO-{YY}{MM}-{SEQ} with the sequence scoped to the
// month.
func (r *repository) GenerateDocNumber(ctx context.Context, date time.Time) (string, error) {
	count, err := db.Count(ctx, r.q,
		`SELECT COUNT(*) FROM sales_orders WHERE date_trunc('month', created_at) = date_trunc('month', $1::timestamptz)`,
		date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SO-%s-%04d", date.Format("0601"), count+1), nil
}

func (r *repository) CountUserOrders(ctx context.Context, userID int64) (int64, error) {
	return db.Count(ctx, r.q,
		`SELECT COUNT(*) FROM sales_orders WHERE created_by = $1 OR updated_by = $1`, userID)
}

func (r *repository) InsertItem(ctx context.Context, item SalesOrderItem) (SalesOrderItem, error) {
	return db.One[SalesOrderItem](ctx, r.q,
		`INSERT INTO sales_order_items (
			order_id, item_id, variant_id, name, quantity, unit_price,
			discount_percent, tax_percent, discount_amount, tax_amount, subtotal, total, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		RETURNING `+orderItemColumns,
		item.OrderID, item.ItemID, item.VariantID, item.Name, item.Quantity, item.UnitPrice,
		item.DiscountPercent, item.TaxPercent, item.DiscountAmount, item.TaxAmount,
		item.Subtotal, item.Total)
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]SalesOrderItem, error) {
	return db.Many[SalesOrderItem](ctx, r.q,
		`SELECT `+orderItemColumns+` FROM sales_order_items WHERE order_id = $1 ORDER BY id`, orderID)
}

func (r *repository) InsertCharge(ctx context.Context, charge SalesOrderCharge) (SalesOrderCharge, error) {
	return db.One[SalesOrderCharge](ctx, r.q,
		`INSERT INTO sales_order_charges (order_id, name, amount, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id, order_id, name, amount, created_at`,
		charge.OrderID, charge.Name, charge.Amount)
}

func (r *repository) ListCharges(ctx context.Context, orderID int64) ([]SalesOrderCharge, error) {
	return db.Many[SalesOrderCharge](ctx, r.q,
		`SELECT id, order_id, name, amount, created_at
		 FROM sales_order_charges WHERE order_id = $1 ORDER BY id`, orderID)
}
