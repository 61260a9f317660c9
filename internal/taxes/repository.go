package taxes

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type Repository interface {
	ListTaxes(ctx context.Context) ([]Tax, error)
	GetTax(ctx context.Context, id int64) (Tax, error)
	CreateTax(ctx context.Context, name string, rate types.Percent) (Tax, error)
	UpdateTax(ctx context.Context, t Tax) (Tax, error)
	DeleteTax(ctx context.Context, id int64) (int64, error)
	CountTaxReferences(ctx context.Context, taxID int64) (int64, error)

	ListGroups(ctx context.Context) ([]TaxGroup, error)
	GetGroup(ctx context.Context, id int64) (TaxGroup, error)
	CreateGroup(ctx context.Context, name string) (TaxGroup, error)
	UpdateGroup(ctx context.Context, g TaxGroup) (TaxGroup, error)
	DeleteGroup(ctx context.Context, id int64) (int64, error)

	FindGroupLink(ctx context.Context, groupID, taxID int64) (*TaxGroupTax, error)
	InsertGroupLink(ctx context.Context, groupID, taxID int64) (TaxGroupTax, error)
	DeleteGroupLink(ctx context.Context, groupID, taxID int64) (int64, error)
	ListGroupTaxes(ctx context.Context, groupID int64) ([]Tax, error)
}

const taxColumns = `id, name, rate, is_active, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListTaxes(ctx context.Context) ([]Tax, error) {
	return db.Many[Tax](ctx, r.pool, `SELECT `+taxColumns+` FROM taxes ORDER BY name`)
}

func (r *repository) GetTax(ctx context.Context, id int64) (Tax, error) {
	return db.One[Tax](ctx, r.pool, `SELECT `+taxColumns+` FROM taxes WHERE id = $1`, id)
}

func (r *repository) CreateTax(ctx context.Context, name string, rate types.Percent) (Tax, error) {
	return db.One[Tax](ctx, r.pool,
		`INSERT INTO taxes (name, rate, is_active, created_at, updated_at)
		 VALUES ($1, $2, TRUE, now(), now())
		 RETURNING `+taxColumns, name, rate.BasisPoints())
}

func (r *repository) UpdateTax(ctx context.Context, t Tax) (Tax, error) {
	return db.One[Tax](ctx, r.pool,
		`UPDATE taxes
		 SET name = $2, rate = $3, is_active = $4, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+taxColumns,
		t.ID, t.Name, t.Rate.BasisPoints(), t.IsActive)
}

func (r *repository) DeleteTax(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM taxes WHERE id = $1`, id)
}

// CountTaxReferences counts item links plus group links for the tax.
func (r *repository) CountTaxReferences(ctx context.Context, taxID int64) (int64, error) {
	return db.Count(ctx, r.pool,
		`SELECT (SELECT COUNT(*) FROM item_taxes WHERE tax_id = $1)
		      + (SELECT COUNT(*) FROM tax_group_taxes WHERE tax_id = $1)`, taxID)
}

func (r *repository) ListGroups(ctx context.Context) ([]TaxGroup, error) {
	return db.Many[TaxGroup](ctx, r.pool,
		`SELECT id, name, created_at, updated_at FROM tax_groups ORDER BY name`)
}

func (r *repository) GetGroup(ctx context.Context, id int64) (TaxGroup, error) {
	return db.One[TaxGroup](ctx, r.pool,
		`SELECT id, name, created_at, updated_at FROM tax_groups WHERE id = $1`, id)
}

func (r *repository) CreateGroup(ctx context.Context, name string) (TaxGroup, error) {
	return db.One[TaxGroup](ctx, r.pool,
		`INSERT INTO tax_groups (name, created_at, updated_at)
		 VALUES ($1, now(), now())
		 RETURNING id, name, created_at, updated_at`, name)
}

func (r *repository) UpdateGroup(ctx context.Context, g TaxGroup) (TaxGroup, error) {
	return db.One[TaxGroup](ctx, r.pool,
		`UPDATE tax_groups SET name = $2, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, name, created_at, updated_at`, g.ID, g.Name)
}

func (r *repository) DeleteGroup(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM tax_groups WHERE id = $1`, id)
}

func (r *repository) FindGroupLink(ctx context.Context, groupID, taxID int64) (*TaxGroupTax, error) {
	return db.Optional[TaxGroupTax](ctx, r.pool,
		`SELECT group_id, tax_id, created_at FROM tax_group_taxes WHERE group_id = $1 AND tax_id = $2`,
		groupID, taxID)
}

func (r *repository) InsertGroupLink(ctx context.Context, groupID, taxID int64) (TaxGroupTax, error) {
	return db.One[TaxGroupTax](ctx, r.pool,
		`INSERT INTO tax_group_taxes (group_id, tax_id, created_at)
		 VALUES ($1, $2, now())
		 RETURNING group_id, tax_id, created_at`, groupID, taxID)
}

func (r *repository) DeleteGroupLink(ctx context.Context, groupID, taxID int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM tax_group_taxes WHERE group_id = $1 AND tax_id = $2`, groupID, taxID)
}

func (r *repository) ListGroupTaxes(ctx context.Context, groupID int64) ([]Tax, error) {
	return db.Many[Tax](ctx, r.pool,
		`SELECT t.id, t.name, t.rate, t.is_active, t.created_at, t.updated_at
		 FROM taxes t
		 JOIN tax_group_taxes gt ON gt.tax_id = t.id
		 WHERE gt.group_id = $1
		 ORDER BY t.name`, groupID)
}
