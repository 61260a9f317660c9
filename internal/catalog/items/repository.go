package items

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/taxes"
)

type Repository interface {
	List(ctx context.Context, filter ListItemsFilter, page shared.Pagination) ([]Item, int, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountVariants(ctx context.Context, itemID int64) (int64, error)

	FindTaxLink(ctx context.Context, itemID, taxID int64) (*ItemTax, error)
	InsertTaxLink(ctx context.Context, itemID, taxID int64) (ItemTax, error)
	DeleteTaxLink(ctx context.Context, itemID, taxID int64) (int64, error)
	ListTaxes(ctx context.Context, itemID int64) ([]taxes.Tax, error)

	FindDiscountLink(ctx context.Context, itemID, discountID int64) (*ItemDiscount, error)
	InsertDiscountLink(ctx context.Context, itemID, discountID int64) (ItemDiscount, error)
	DeleteDiscountLink(ctx context.Context, itemID, discountID int64) (int64, error)
	ListDiscountLinks(ctx context.Context, itemID int64) ([]ItemDiscount, error)
}

const itemColumns = `id, category_id, brand_id, name, price, is_active, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filter ListItemsFilter, page shared.Pagination) ([]Item, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += ` AND category_id = $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}

	total, err := db.Count(ctx, r.pool, `SELECT COUNT(*) FROM items`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, page.PerPage, page.Offset())
	query := `SELECT ` + itemColumns + ` FROM items` + where +
		` ORDER BY name LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := db.Many[Item](ctx, r.pool, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	return db.One[Item](ctx, r.pool, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	return db.One[Item](ctx, r.pool,
		`INSERT INTO items (category_id, brand_id, name, price, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, now(), now())
		 RETURNING `+itemColumns,
		item.CategoryID, item.BrandID, item.Name, item.Price.Cents())
}

func (r *repository) Update(ctx context.Context, item Item) (Item, error) {
	return db.One[Item](ctx, r.pool,
		`UPDATE items
		 SET category_id = $2, brand_id = $3, name = $4, price = $5, is_active = $6,
		     updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+itemColumns,
		item.ID, item.CategoryID, item.BrandID, item.Name, item.Price.Cents(), item.IsActive)
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM items WHERE id = $1`, id)
}

func (r *repository) CountVariants(ctx context.Context, itemID int64) (int64, error) {
	return db.Count(ctx, r.pool, `SELECT COUNT(*) FROM item_variants WHERE item_id = $1`, itemID)
}

func (r *repository) FindTaxLink(ctx context.Context, itemID, taxID int64) (*ItemTax, error) {
	return db.Optional[ItemTax](ctx, r.pool,
		`SELECT item_id, tax_id, created_at FROM item_taxes WHERE item_id = $1 AND tax_id = $2`,
		itemID, taxID)
}

func (r *repository) InsertTaxLink(ctx context.Context, itemID, taxID int64) (ItemTax, error) {
	return db.One[ItemTax](ctx, r.pool,
		`INSERT INTO item_taxes (item_id, tax_id, created_at)
		 VALUES ($1, $2, now())
		 RETURNING item_id, tax_id, created_at`, itemID, taxID)
}

func (r *repository) DeleteTaxLink(ctx context.Context, itemID, taxID int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM item_taxes WHERE item_id = $1 AND tax_id = $2`, itemID, taxID)
}

func (r *repository) ListTaxes(ctx context.Context, itemID int64) ([]taxes.Tax, error) {
	return db.Many[taxes.Tax](ctx, r.pool,
		`SELECT t.id, t.name, t.rate, t.is_active, t.created_at, t.updated_at
		 FROM taxes t
		 JOIN item_taxes it ON it.tax_id = t.id
		 WHERE it.item_id = $1
		 ORDER BY t.name`, itemID)
}

func (r *repository) FindDiscountLink(ctx context.Context, itemID, discountID int64) (*ItemDiscount, error) {
	return db.Optional[ItemDiscount](ctx, r.pool,
		`SELECT item_id, discount_id, created_at FROM item_discounts WHERE item_id = $1 AND discount_id = $2`,
		itemID, discountID)
}

func (r *repository) InsertDiscountLink(ctx context.Context, itemID, discountID int64) (ItemDiscount, error) {
	return db.One[ItemDiscount](ctx, r.pool,
		`INSERT INTO item_discounts (item_id, discount_id, created_at)
		 VALUES ($1, $2, now())
		 RETURNING item_id, discount_id, created_at`, itemID, discountID)
}

func (r *repository) DeleteDiscountLink(ctx context.Context, itemID, discountID int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM item_discounts WHERE item_id = $1 AND discount_id = $2`, itemID, discountID)
}

func (r *repository) ListDiscountLinks(ctx context.Context, itemID int64) ([]ItemDiscount, error) {
	return db.Many[ItemDiscount](ctx, r.pool,
		`SELECT item_id, discount_id, created_at FROM item_discounts WHERE item_id = $1 ORDER BY discount_id`,
		itemID)
}
