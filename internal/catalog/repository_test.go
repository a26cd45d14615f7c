package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listCols = []string{"product_id", "name", "description", "price", "image_url", "available", "created_at", "stock_level"}

func TestPostgresListAvailableBindsPagination(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Now().UTC()
	rows := pgxmock.NewRows(listCols).
		AddRow(int64(2), "Oak Table", "solid oak", 349.0, "/img/2.jpg", true, created, 3).
		AddRow(int64(1), "Loft Sofa", "three seats", 899.99, "/img/1.jpg", true, created.Add(-time.Hour), 4)
	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	products, err := repo.ListAvailable(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListFeaturedBindsLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`stock_level > 0`).
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows(listCols))

	repo := NewPostgresRepository(mock)
	products, err := repo.ListFeatured(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := append(append([]string{}, listCols...), "reorder_threshold")
	created := time.Now().UTC()
	mock.ExpectQuery(`WHERE p.product_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(7), "Wool Rug", "hand woven", 120.0, "/img/7.jpg", true, created, 12, 5))

	repo := NewPostgresRepository(mock)
	p, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, 5, p.ReorderThreshold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := append(append([]string{}, listCols...), "reorder_threshold")
	mock.ExpectQuery(`WHERE p.product_id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(cols))

	repo := NewPostgresRepository(mock)
	_, err = repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
