package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() (User, Address) {
	u := User{
		ID:           uuid.NewString(),
		FirstName:    "A",
		LastName:     "B",
		Email:        "a@b.com",
		PasswordHash: []byte("$2a$10$hash"),
		CreatedAt:    time.Now().UTC(),
	}
	addr := Address{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		Line1:      "1 St",
		City:       "X",
		State:      "Y",
		PostalCode: "1",
		Country:    "Z",
	}
	return u, addr
}

func TestPostgresCreateWithAddressCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	u, addr := testUser()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user"`).
		WithArgs(uuid.MustParse(u.ID), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO user_address`).
		WithArgs(uuid.MustParse(addr.ID), uuid.MustParse(u.ID), addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.CreateWithAddress(context.Background(), u, addr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateWithAddressRollsBackOnAddressFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	u, addr := testUser()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user"`).
		WithArgs(uuid.MustParse(u.ID), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO user_address`).
		WithArgs(uuid.MustParse(addr.ID), uuid.MustParse(u.ID), addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country).
		WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	err = repo.CreateWithAddress(context.Background(), u, addr)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateWithAddressMapsUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	u, addr := testUser()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user"`).
		WithArgs(uuid.MustParse(u.ID), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	err = repo.CreateWithAddress(context.Background(), u, addr)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	created := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password_hash", "created_at"}).
		AddRow(id, "A", "B", "a@b.com", []byte("hash"), created)
	mock.ExpectQuery(`SELECT user_id, first_name, last_name, email, password_hash, created_at`).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	u, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id.String(), u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT user_id, first_name, last_name, email, password_hash, created_at`).
		WithArgs("missing@b.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password_hash", "created_at"}))

	repo := NewPostgresRepository(mock)
	_, err = repo.FindByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}