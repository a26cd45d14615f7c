package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no available product exists for the given id.
var ErrNotFound = errors.New("product not found")

// Repository reads the product catalog.
type Repository interface {
	ListAvailable(ctx context.Context, limit, offset int) ([]Product, error)
	// ListFeatured returns available products with stock on hand.
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
}

// DB is the subset of pgxpool.Pool the repository needs; it lets tests
// substitute a pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// PostgresRepository implements Repository using PostgreSQL. Limit and
// offset are always bound as parameters, never interpolated.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository builds a Postgres-backed catalog repository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listColumns = `p.product_id, p.name, p.description, p.price, p.image_url, p.available, p.created_at,
        COALESCE(i.stock_level, 0)`

// ListAvailable returns available products, newest first.
func (r *PostgresRepository) ListAvailable(ctx context.Context, limit, offset int) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listColumns+`
        FROM product p
        LEFT JOIN inventory i ON p.product_id = i.product_id
        WHERE p.available
        ORDER BY p.created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListFeatured returns available, in-stock products, newest first.
func (r *PostgresRepository) ListFeatured(ctx context.Context, limit int) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listColumns+`
        FROM product p
        LEFT JOIN inventory i ON p.product_id = i.product_id
        WHERE p.available AND i.stock_level > 0
        ORDER BY p.created_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// GetByID fetches a single available product with its inventory detail.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listColumns+`, COALESCE(i.reorder_threshold, 0)
        FROM product p
        LEFT JOIN inventory i ON p.product_id = i.product_id
        WHERE p.product_id = $1 AND p.available`, id)

	var (
		p         Product
		createdAt time.Time
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Available,
		&createdAt, &p.StockLevel, &p.ReorderThreshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var (
			p         Product
			createdAt time.Time
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Available,
			&createdAt, &p.StockLevel); err != nil {
			return nil, err
		}
		p.CreatedAt = createdAt.UTC()
		products = append(products, p)
	}
	return products, rows.Err()
}
