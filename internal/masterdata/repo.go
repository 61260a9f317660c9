package masterdata

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

// Per-entity repository contracts. Consumers in other domains depend on the
// narrow interface they need; Repository combines them for the service.

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	CreateCustomer(ctx context.Context, c Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, c Customer) (Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)
	CountCustomerOrders(ctx context.Context, id int64) (int64, error)
}

type SupplierRepository interface {
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	GetSupplier(ctx context.Context, id int64) (Supplier, error)
	CreateSupplier(ctx context.Context, s Supplier) (Supplier, error)
	UpdateSupplier(ctx context.Context, s Supplier) (Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) (int64, error)
}

type CostCenterRepository interface {
	ListCostCenters(ctx context.Context) ([]CostCenter, error)
	GetCostCenter(ctx context.Context, id int64) (CostCenter, error)
	CreateCostCenter(ctx context.Context, c CostCenter) (CostCenter, error)
	UpdateCostCenter(ctx context.Context, c CostCenter) (CostCenter, error)
	DeleteCostCenter(ctx context.Context, id int64) (int64, error)
}

type PaymentMethodRepository interface {
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id int64) (PaymentMethod, error)
	FindPaymentMethodByCode(ctx context.Context, code string) (*PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, m PaymentMethod) (PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, m PaymentMethod) (PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id int64) (int64, error)
	CountPaymentMethodPayments(ctx context.Context, id int64) (int64, error)
}

type ChannelRepository interface {
	ListChannels(ctx context.Context) ([]Channel, error)
	GetChannel(ctx context.Context, id int64) (Channel, error)
	CreateChannel(ctx context.Context, c Channel) (Channel, error)
	UpdateChannel(ctx context.Context, c Channel) (Channel, error)
	DeleteChannel(ctx context.Context, id int64) (int64, error)
}

type LocationRepository interface {
	ListLocations(ctx context.Context) ([]Location, error)
	GetLocation(ctx context.Context, id int64) (Location, error)
	CreateLocation(ctx context.Context, l Location) (Location, error)
	UpdateLocation(ctx context.Context, l Location) (Location, error)
	DeleteLocation(ctx context.Context, id int64) (int64, error)
}

type BrandRepository interface {
	ListBrands(ctx context.Context) ([]Brand, error)
	GetBrand(ctx context.Context, id int64) (Brand, error)
	CreateBrand(ctx context.Context, b Brand) (Brand, error)
	UpdateBrand(ctx context.Context, b Brand) (Brand, error)
	DeleteBrand(ctx context.Context, id int64) (int64, error)
}

type Repository interface {
	CustomerRepository
	SupplierRepository
	CostCenterRepository
	PaymentMethodRepository
	ChannelRepository
	LocationRepository
	BrandRepository
}

type repo struct {
	pool *pgxpool.Pool
}

// NewRepository creates the master data repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

// Customers

func (r *repo) ListCustomers(ctx context.Context) ([]Customer, error) {
	return db.Many[Customer](ctx, r.pool,
		`SELECT id, name, email, phone, is_active, created_at, updated_at FROM customers ORDER BY name`)
}

func (r *repo) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	return db.One[Customer](ctx, r.pool,
		`SELECT id, name, email, phone, is_active, created_at, updated_at FROM customers WHERE id = $1`, id)
}

func (r *repo) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	return db.One[Customer](ctx, r.pool,
		`INSERT INTO customers (name, email, phone, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, TRUE, now(), now())
		 RETURNING id, name, email, phone, is_active, created_at, updated_at`,
		c.Name, c.Email, c.Phone)
}

func (r *repo) UpdateCustomer(ctx context.Context, c Customer) (Customer, error) {
	return db.One[Customer](ctx, r.pool,
		`UPDATE customers SET name = $2, email = $3, phone = $4, is_active = $5, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, name, email, phone, is_active, created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Phone, c.IsActive)
}

func (r *repo) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM customers WHERE id = $1`, id)
}

func (r *repo) CountCustomerOrders(ctx context.Context, id int64) (int64, error) {
	return db.Count(ctx, r.pool, `SELECT COUNT(*) FROM sales_orders WHERE customer_id = $1`, id)
}

// Suppliers

func (r *repo) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return db.Many[Supplier](ctx, r.pool,
		`SELECT id, name, email, phone, is_active, created_at, updated_at FROM suppliers ORDER BY name`)
}

func (r *repo) GetSupplier(ctx context.Context, id int64) (Supplier, error) {
	return db.One[Supplier](ctx, r.pool,
		`SELECT id, name, email, phone, is_active, created_at, updated_at FROM suppliers WHERE id = $1`, id)
}

func (r *repo) CreateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	return db.One[Supplier](ctx, r.pool,
		`INSERT INTO suppliers (name, email, phone, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, TRUE, now(), now())
		 RETURNING id, name, email, phone, is_active, created_at, updated_at`,
		s.Name, s.Email, s.Phone)
}

func (r *repo) UpdateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	return db.One[Supplier](ctx, r.pool,
		`UPDATE suppliers SET name = $2, email = $3, phone = $4, is_active = $5, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, name, email, phone, is_active, created_at, updated_at`,
		s.ID, s.Name, s.Email, s.Phone, s.IsActive)
}

func (r *repo) DeleteSupplier(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM suppliers WHERE id = $1`, id)
}

// Cost centers

func (r *repo) ListCostCenters(ctx context.Context) ([]CostCenter, error) {
	return db.Many[CostCenter](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM cost_centers ORDER BY code`)
}

func (r *repo) GetCostCenter(ctx context.Context, id int64) (CostCenter, error) {
	return db.One[CostCenter](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM cost_centers WHERE id = $1`, id)
}

func (r *repo) CreateCostCenter(ctx context.Context, c CostCenter) (CostCenter, error) {
	return db.One[CostCenter](ctx, r.pool,
		`INSERT INTO cost_centers (code, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, TRUE, now(), now())
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		c.Code, c.Name)
}

func (r *repo) UpdateCostCenter(ctx context.Context, c CostCenter) (CostCenter, error) {
	return db.One[CostCenter](ctx, r.pool,
		`UPDATE cost_centers SET code = $2, name = $3, is_active = $4, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		c.ID, c.Code, c.Name, c.IsActive)
}

func (r *repo) DeleteCostCenter(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM cost_centers WHERE id = $1`, id)
}

// Payment methods

func (r *repo) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return db.Many[PaymentMethod](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM payment_methods ORDER BY code`)
}

func (r *repo) GetPaymentMethod(ctx context.Context, id int64) (PaymentMethod, error) {
	return db.One[PaymentMethod](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM payment_methods WHERE id = $1`, id)
}

func (r *repo) FindPaymentMethodByCode(ctx context.Context, code string) (*PaymentMethod, error) {
	return db.Optional[PaymentMethod](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM payment_methods WHERE lower(code) = lower($1)`, code)
}

func (r *repo) CreatePaymentMethod(ctx context.Context, m PaymentMethod) (PaymentMethod, error) {
	return db.One[PaymentMethod](ctx, r.pool,
		`INSERT INTO payment_methods (code, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, TRUE, now(), now())
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		m.Code, m.Name)
}

func (r *repo) UpdatePaymentMethod(ctx context.Context, m PaymentMethod) (PaymentMethod, error) {
	return db.One[PaymentMethod](ctx, r.pool,
		`UPDATE payment_methods SET code = $2, name = $3, is_active = $4, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		m.ID, m.Code, m.Name, m.IsActive)
}

func (r *repo) DeletePaymentMethod(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM payment_methods WHERE id = $1`, id)
}

func (r *repo) CountPaymentMethodPayments(ctx context.Context, id int64) (int64, error) {
	return db.Count(ctx, r.pool, `SELECT COUNT(*) FROM sales_order_payments WHERE payment_method_id = $1`, id)
}

// Channels

func (r *repo) ListChannels(ctx context.Context) ([]Channel, error) {
	return db.Many[Channel](ctx, r.pool,
		`SELECT id, code, name, created_at, updated_at FROM channels ORDER BY code`)
}

func (r *repo) GetChannel(ctx context.Context, id int64) (Channel, error) {
	return db.One[Channel](ctx, r.pool,
		`SELECT id, code, name, created_at, updated_at FROM channels WHERE id = $1`, id)
}

func (r *repo) CreateChannel(ctx context.Context, c Channel) (Channel, error) {
	return db.One[Channel](ctx, r.pool,
		`INSERT INTO channels (code, name, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 RETURNING id, code, name, created_at, updated_at`,
		c.Code, c.Name)
}

func (r *repo) UpdateChannel(ctx context.Context, c Channel) (Channel, error) {
	return db.One[Channel](ctx, r.pool,
		`UPDATE channels SET code = $2, name = $3, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, code, name, created_at, updated_at`,
		c.ID, c.Code, c.Name)
}

func (r *repo) DeleteChannel(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM channels WHERE id = $1`, id)
}

// Locations

func (r *repo) ListLocations(ctx context.Context) ([]Location, error) {
	return db.Many[Location](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM locations ORDER BY code`)
}

func (r *repo) GetLocation(ctx context.Context, id int64) (Location, error) {
	return db.One[Location](ctx, r.pool,
		`SELECT id, code, name, is_active, created_at, updated_at FROM locations WHERE id = $1`, id)
}

func (r *repo) CreateLocation(ctx context.Context, l Location) (Location, error) {
	return db.One[Location](ctx, r.pool,
		`INSERT INTO locations (code, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, TRUE, now(), now())
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		l.Code, l.Name)
}

func (r *repo) UpdateLocation(ctx context.Context, l Location) (Location, error) {
	return db.One[Location](ctx, r.pool,
		`UPDATE locations SET code = $2, name = $3, is_active = $4, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, code, name, is_active, created_at, updated_at`,
		l.ID, l.Code, l.Name, l.IsActive)
}

func (r *repo) DeleteLocation(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM locations WHERE id = $1`, id)
}

// Brands

func (r *repo) ListBrands(ctx context.Context) ([]Brand, error) {
	return db.Many[Brand](ctx, r.pool,
		`SELECT id, name, is_active, created_at, updated_at FROM brands ORDER BY name`)
}

func (r *repo) GetBrand(ctx context.Context, id int64) (Brand, error) {
	return db.One[Brand](ctx, r.pool,
		`SELECT id, name, is_active, created_at, updated_at FROM brands WHERE id = $1`, id)
}

func (r *repo) CreateBrand(ctx context.Context, b Brand) (Brand, error) {
	return db.One[Brand](ctx, r.pool,
		`INSERT INTO brands (name, is_active, created_at, updated_at)
		 VALUES ($1, TRUE, now(), now())
		 RETURNING id, name, is_active, created_at, updated_at`,
		b.Name)
}

func (r *repo) UpdateBrand(ctx context.Context, b Brand) (Brand, error) {
	return db.One[Brand](ctx, r.pool,
		`UPDATE brands SET name = $2, is_active = $3, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING id, name, is_active, created_at, updated_at`,
		b.ID, b.Name, b.IsActive)
}

func (r *repo) DeleteBrand(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM brands WHERE id = $1`, id)
}
