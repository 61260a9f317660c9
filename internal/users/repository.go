package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type Repository interface {
	List(ctx context.Context, search string, page shared.Pagination) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) (int64, error)
	TouchLastLogin(ctx context.Context, id int64) error
	CountOrders(ctx context.Context, id int64) (int64, error)
}

const userColumns = `id, username, pin_hash, full_name, is_active, last_login_at, created_at, updated_at`

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, search string, page shared.Pagination) ([]User, int, error) {
	where := ``
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = ` WHERE username ILIKE $1 OR full_name ILIKE $1`
	}

	total, err := db.Count(ctx, r.pool, `SELECT COUNT(*) FROM users`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	var rows []User
	if search != "" {
		rows, err = db.Many[User](ctx, r.pool,
			`SELECT `+userColumns+` FROM users`+where+` ORDER BY username LIMIT $2 OFFSET $3`,
			args[0], page.PerPage, page.Offset())
	} else {
		rows, err = db.Many[User](ctx, r.pool,
			`SELECT `+userColumns+` FROM users ORDER BY username LIMIT $1 OFFSET $2`,
			page.PerPage, page.Offset())
	}
	if err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	return db.One[User](ctx, r.pool,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return db.Optional[User](ctx, r.pool,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	return db.One[User](ctx, r.pool,
		`INSERT INTO users (username, pin_hash, full_name, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING `+userColumns,
		u.Username, u.PinHash, u.FullName, u.IsActive)
}

func (r *repository) Update(ctx context.Context, u User) (User, error) {
	return db.One[User](ctx, r.pool,
		`UPDATE users
		 SET username = $2, pin_hash = $3, full_name = $4, is_active = $5, updated_at = clock_timestamp()
		 WHERE id = $1
		 RETURNING `+userColumns,
		u.ID, u.Username, u.PinHash, u.FullName, u.IsActive)
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, r.pool, `DELETE FROM users WHERE id = $1`, id)
}

func (r *repository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := db.Exec(ctx, r.pool,
		`UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

func (r *repository) CountOrders(ctx context.Context, id int64) (int64, error) {
	return db.Count(ctx, r.pool,
		`SELECT COUNT(*) FROM sales_orders WHERE created_by = $1 OR updated_by = $1`, id)
}
