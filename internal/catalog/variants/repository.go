package variants

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

type Repository interface {
	// WithTx runs fn against a repository bound to a single transaction.
	// The default-flag writes depend on it: clearing siblings and setting
	// the new default must land together or not at all.
	WithTx(ctx context.Context, fn func(Repository) error) error

	ListTypes(ctx context.Context) ([]VariantType, error)
	GetType(ctx context.Context, id int64) (VariantType, error)
	CreateType(ctx context.Context, name string) (VariantType, error)
	UpdateType(ctx context.Context, t VariantType) (VariantType, error)
	DeleteType(ctx context.Context, id int64) (int64, error)
	FindTypeByName(ctx context.Context, name string) (*VariantType, error)
	CountTypeValues(ctx context.Context, typeID int64) (int64, error)

	ListValues(ctx context.Context, typeID int64) ([]VariantValue, error)
	GetValue(ctx context.Context, id int64) (VariantValue, error)
	CreateValue(ctx context.Context, v VariantValue) (VariantValue, error)
	UpdateValue(ctx context.Context, v VariantValue) (VariantValue, error)
	DeleteValue(ctx context.Context, id int64) (int64, error)
	MaxDisplayOrder(ctx context.Context, typeID int64) (int64, error)
	CountValueLinks(ctx context.Context, valueID int64) (int64, error)

	ListVariants(ctx context.Context, itemID int64) ([]ItemVariant, error)
	GetVariant(ctx context.Context, id int64) (ItemVariant, error)
	CreateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error)
	UpdateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error)
	DeleteVariant(ctx context.Context, id int64) (int64, error)
	CountItemVariants(ctx context.Context, itemID int64) (int64, error)
	ClearDefault(ctx context.Context, itemID int64) error
	SetDefaultFlag(ctx context.Context, id int64) (int64, error)
	EarliestVariant(ctx context.Context, itemID int64) (*ItemVariant, error)

	ListVariantValues(ctx context.Context, variantID int64) ([]VariantValue, error)
	FindValueLink(ctx context.Context, variantID, valueID int64) (*VariantValueLink, error)
	InsertValueLink(ctx context.Context, variantID, valueID int64) (VariantValueLink, error)
	DeleteValueLink(ctx context.Context, variantID, valueID int64) (int64, error)
	DeleteVariantLinks(ctx context.Context, variantID int64) error
}

const (
	typeColumns    = `id, name, created_at, updated_at`
	valueColumns   = `id, type_id, value, display_order, created_at, updated_at`
	variantColumns = `id, item_id, sku, price_adjustment, is_default, created_at, updated_at`
)

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

func (r *repository) ListTypes(ctx context.Context) ([]VariantType, error) {
	return db.Many[VariantType](ctx, r.q,
		`SELECT `+typeColumns+` FROM variant_types ORDER BY name`)
}

func (r *repository) GetType(ctx context.Context, id int64) (VariantType, error) {
	return db.One[VariantType](ctx, r.q,
		`SELECT `+typeColumns+` FROM variant_types WHERE id = $1`, id)
}

func (r *repository) CreateType(ctx context.Context, name string) (VariantType, error) {
	return db.One[VariantType](ctx, r.q,
		`INSERT INTO variant_types (name, created_at, updated_at)
		 VALUES ($1, now(), now())
		 RETURNING `+typeColumns, name)
}

func (r *repository) UpdateType(ctx context.Context, t VariantType) (VariantType, error) {
	return db.One[VariantType](ctx, r.q,
		`UPDATE variant_types
		 SET name = $2, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+typeColumns, t.ID, t.Name)
}

func (r *repository) DeleteType(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.q, `DELETE FROM variant_types WHERE id = $1`, id)
}

func (r *repository) FindTypeByName(ctx context.Context, name string) (*VariantType, error) {
	return db.Optional[VariantType](ctx, r.q,
		`SELECT `+typeColumns+` FROM variant_types WHERE lower(name) = lower($1)`, name)
}

func (r *repository) CountTypeValues(ctx context.Context, typeID int64) (int64, error) {
	return db.Count(ctx, r.q,
		`SELECT COUNT(*) FROM variant_values WHERE type_id = $1`, typeID)
}

func (r *repository) ListValues(ctx context.Context, typeID int64) ([]VariantValue, error) {
	return db.Many[VariantValue](ctx, r.q,
		`SELECT `+valueColumns+` FROM variant_values
		 WHERE type_id = $1
		 ORDER BY display_order, id`, typeID)
}

func (r *repository) GetValue(ctx context.Context, id int64) (VariantValue, error) {
	return db.One[VariantValue](ctx, r.q,
		`SELECT `+valueColumns+` FROM variant_values WHERE id = $1`, id)
}

func (r *repository) CreateValue(ctx context.Context, v VariantValue) (VariantValue, error) {
	return db.One[VariantValue](ctx, r.q,
		`INSERT INTO variant_values (type_id, value, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 RETURNING `+valueColumns, v.TypeID, v.Value, v.DisplayOrder)
}

func (r *repository) UpdateValue(ctx context.Context, v VariantValue) (VariantValue, error) {
	return db.One[VariantValue](ctx, r.q,
		`UPDATE variant_values
		 SET value = $2, display_order = $3, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+valueColumns, v.ID, v.Value, v.DisplayOrder)
}

func (r *repository) DeleteValue(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.q, `DELETE FROM variant_values WHERE id = $1`, id)
}

func (r *repository) MaxDisplayOrder(ctx context.Context, typeID int64) (int64, error) {
	return db.Count(ctx, r.q,
		`SELECT COALESCE(MAX(display_order), -1) FROM variant_values WHERE type_id = $1`, typeID)
}

func (r *repository) CountValueLinks(ctx context.Context, valueID int64) (int64, error) {
	return db.Count(ctx, r.q,
		`SELECT COUNT(*) FROM item_variant_values WHERE value_id = $1`, valueID)
}

func (r *repository) ListVariants(ctx context.Context, itemID int64) ([]ItemVariant, error) {
	return db.Many[ItemVariant](ctx, r.q,
		`SELECT `+variantColumns+` FROM item_variants
		 WHERE item_id = $1
		 ORDER BY created_at, id`, itemID)
}

func (r *repository) GetVariant(ctx context.Context, id int64) (ItemVariant, error) {
	return db.One[ItemVariant](ctx, r.q,
		`SELECT `+variantColumns+` FROM item_variants WHERE id = $1`, id)
}

func (r *repository) CreateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error) {
	return db.One[ItemVariant](ctx, r.q,
		`INSERT INTO item_variants (item_id, sku, price_adjustment, is_default, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING `+variantColumns,
		v.ItemID, v.SKU, v.PriceAdjustment, v.IsDefault)
}

func (r *repository) UpdateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error) {
	return db.One[ItemVariant](ctx, r.q,
		`UPDATE item_variants
		 SET sku = $2, price_adjustment = $3, is_default = $4, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+variantColumns,
		v.ID, v.SKU, v.PriceAdjustment, v.IsDefault)
}

func (r *repository) DeleteVariant(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.q, `DELETE FROM item_variants WHERE id = $1`, id)
}

func (r *repository) CountItemVariants(ctx context.Context, itemID int64) (int64, error) {
	return db.Count(ctx, r.q,
		`SELECT COUNT(*) FROM item_variants WHERE item_id = $1`, itemID)
}

func (r *repository) ClearDefault(ctx context.Context, itemID int64) error {
	_, err := db.Exec(ctx, r.q,
		`UPDATE item_variants
		 SET is_default = FALSE, updated_at = clock_timestamp()
		 WHERE item_id = $1 AND is_default`, itemID)
	return err
}

func (r *repository) SetDefaultFlag(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.q,
		`UPDATE item_variants
		 SET is_default = TRUE, updated_at = clock_timestamp()
		 WHERE id = $1`, id)
}

func (r *repository) EarliestVariant(ctx context.Context, itemID int64) (*ItemVariant, error) {
	return db.Optional[ItemVariant](ctx, r.q,
		`SELECT `+variantColumns+` FROM item_variants
		 WHERE item_id = $1
		 ORDER BY created_at, id
		 LIMIT 1`, itemID)
}

func (r *repository) ListVariantValues(ctx context.Context, variantID int64) ([]VariantValue, error) {
	return db.Many[VariantValue](ctx, r.q,
		`SELECT vv.id, vv.type_id, vv.value, vv.display_order, vv.created_at, vv.updated_at
		 FROM variant_values vv
		 JOIN item_variant_values l ON l.value_id = vv.id
		 WHERE l.variant_id = $1
		 ORDER BY vv.display_order, vv.id`, variantID)
}

func (r *repository) FindValueLink(ctx context.Context, variantID, valueID int64) (*VariantValueLink, error) {
	return db.Optional[VariantValueLink](ctx, r.q,
		`SELECT variant_id, value_id, created_at FROM item_variant_values
		 WHERE variant_id = $1 AND value_id = $2`, variantID, valueID)
}

func (r *repository) InsertValueLink(ctx context.Context, variantID, valueID int64) (VariantValueLink, error) {
	return db.One[VariantValueLink](ctx, r.q,
		`INSERT INTO item_variant_values (variant_id, value_id, created_at)
		 VALUES ($1, $2, now())
		 RETURNING variant_id, value_id, created_at`, variantID, valueID)
}

func (r *repository) DeleteValueLink(ctx context.Context, variantID, valueID int64) (int64, error) {
	return db.Exec(ctx, r.q,
		`DELETE FROM item_variant_values WHERE variant_id = $1 AND value_id = $2`,
		variantID, valueID)
}

func (r *repository) DeleteVariantLinks(ctx context.Context, variantID int64) error {
	_, err := db.Exec(ctx, r.q,
		`DELETE FROM item_variant_values WHERE variant_id = $1`, variantID)
	return err
}
