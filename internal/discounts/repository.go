package discounts

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context) ([]Discount, error)
	Get(ctx context.Context, id int64) (Discount, error)
	FindByName(ctx context.Context, name string) (*Discount, error)
	Create(ctx context.Context, d Discount) (Discount, error)
	Update(ctx context.Context, d Discount) (Discount, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountItemLinks(ctx context.Context, id int64) (int64, error)
}

const discountColumns = `id, name, discount_type, value, scope, is_active, starts_at, ends_at, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Discount, error) {
	return db.Many[Discount](ctx, r.pool, `SELECT `+discountColumns+` FROM discounts ORDER BY name`)
}

func (r *repository) Get(ctx context.Context, id int64) (Discount, error) {
	return db.One[Discount](ctx, r.pool, `SELECT `+discountColumns+` FROM discounts WHERE id = $1`, id)
}

func (r *repository) FindByName(ctx context.Context, name string) (*Discount, error) {
	return db.Optional[Discount](ctx, r.pool,
		`SELECT `+discountColumns+` FROM discounts WHERE lower(name) = lower($1)`, name)
}

func (r *repository) Create(ctx context.Context, d Discount) (Discount, error) {
	return db.One[Discount](ctx, r.pool,
		`INSERT INTO discounts (name, discount_type, value, scope, is_active, starts_at, ends_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, $5, $6, now(), now())
		 RETURNING `+discountColumns,
		d.Name, d.Type, d.Value, d.Scope, d.StartsAt, d.EndsAt)
}

func (r *repository) Update(ctx context.Context, d Discount) (Discount, error) {
	return db.One[Discount](ctx, r.pool,
		`UPDATE discounts
		 SET name = $2, discount_type = $3, value = $4, scope = $5, is_active = $6,
		     starts_at = $7, ends_at = $8, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+discountColumns,
		d.ID, d.Name, d.Type, d.Value, d.Scope, d.IsActive, d.StartsAt, d.EndsAt)
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM discounts WHERE id = $1`, id)
}

func (r *repository) CountItemLinks(ctx context.Context, id int64) (int64, error) {
	return db.Count(ctx, r.pool, `SELECT COUNT(*) FROM item_discounts WHERE discount_id = $1`, id)
}
