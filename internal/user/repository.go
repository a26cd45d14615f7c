package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user exists for the given lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken indicates the unique email constraint was violated.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists users and their registration address.
type Repository interface {
	// CreateWithAddress inserts the user row and its address row atomically.
	CreateWithAddress(ctx context.Context, user User, addr Address) error
	FindByEmail(ctx context.Context, email string) (User, error)
}

// DB is the subset of pgxpool.Pool the repository needs; it lets tests
// substitute a pgxmock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ DB = (*pgxpool.Pool)(nil)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateWithAddress inserts user and address inside a single transaction so
// a failed address insert never leaves an orphaned user row behind.
func (r *PostgresRepository) CreateWithAddress(ctx context.Context, user User, addr Address) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	addrID, err := uuid.Parse(addr.ID)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	_, err = tx.Exec(ctx, `INSERT INTO "user" (user_id, first_name, last_name, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO user_address (user_address_id, user_id, address_line1, address_line2, city, state, postal_code, country)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		addrID, userID, addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByEmail fetches a user by exact email match.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, first_name, last_name, email, password_hash, created_at
        FROM "user" WHERE email = $1`, email)

	var (
		id        uuid.UUID
		createdAt time.Time
		u         User
	)
	if err := row.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.ID = id.String()
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
