package categories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type Repository interface {
	List(ctx context.Context, search string, page shared.Pagination) ([]Category, int, error)
	Get(ctx context.Context, id int64) (Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountItems(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, search string, page shared.Pagination) ([]Category, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	total, err := db.Count(ctx, r.pool, `SELECT COUNT(*) FROM item_categories`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, is_active, created_at, updated_at FROM item_categories` + where +
		` ORDER BY name LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, page.PerPage, page.Offset())

	rows, err := db.Many[Category](ctx, r.pool, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	return db.One[Category](ctx, r.pool,
		`SELECT id, name, is_active, created_at, updated_at FROM item_categories WHERE id = $1`, id)
}

func (r *repository) FindByName(ctx context.Context, name string) (*Category, error) {
	return db.Optional[Category](ctx, r.pool,
		`SELECT id, name, is_active, created_at, updated_at FROM item_categories WHERE lower(name) = lower($1)`, name)
}

func (r *repository) Create(ctx context.Context, name string) (Category, error) {
	return db.One[Category](ctx, r.pool,
		`INSERT INTO item_categories (name, is_active, created_at, updated_at)
		 VALUES ($1, TRUE, now(), now())
		 RETURNING id, name, is_active, created_at, updated_at`, name)
}

func (r *repository) Update(ctx context.Context, c Category) (Category, error) {
	return db.One[Category](ctx, r.pool,
		`UPDATE item_categories
		 SET name = $2, is_active = $3, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, name, is_active, created_at, updated_at`,
		c.ID, c.Name, c.IsActive)
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM item_categories WHERE id = $1`, id)
}

func (r *repository) CountItems(ctx context.Context, id int64) (int64, error) {
	return db.Count(ctx, r.pool, `SELECT COUNT(*) FROM items WHERE category_id = $1`, id)
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
