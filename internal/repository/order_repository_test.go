package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/database"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func newMockDB(t *testing.T) (*database.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewFromDB(sqlx.NewDb(db, "postgres"), logger.NewNop()), mock
}

var orderRowColumns = []string{
	"order_no", "order_date", "customer_name", "phone_number", "address",
	"qty_500g", "qty_1kg", "total", "status",
}

func TestPGOrderRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGOrderRepository(db, logger.NewNop())
	order := sampleOrder("a1b2c3d4")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs("a1b2c3d4", "2024-05-01", "Kamal Silva", "0712345678", "4 Lake Rd, Kandy",
			1, 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGOrderRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGOrderRepository(db, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), sampleOrder("a1b2c3d4"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPGOrderRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGOrderRepository(db, logger.NewNop())

	rows := sqlmock.NewRows(orderRowColumns).
		AddRow("a1b2c3d4", "2024-05-01", "Kamal", "0712345678", "Kandy", 1, 2, "2500.00", "Pending")
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE order_no = $1")).
		WithArgs("a1b2c3d4").
		WillReturnRows(rows)

	order, err := repo.GetByID(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "Kamal", order.CustomerName)
	assert.Equal(t, 2, order.Qty1kg)
	assert.True(t, decimal.NewFromInt(2500).Equal(order.Total))
}

func TestPGOrderRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGOrderRepository(db, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE order_no = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGOrderRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGOrderRepository(db, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE order_no = $1")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrNotFound)
}

func TestPGPriceRepository_GetStoresDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGPriceRepository(db, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT price_500g, price_1kg FROM price_list")).
		WillReturnRows(sqlmock.NewRows([]string{"price_500g", "price_1kg"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO price_list")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	prices, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(prices.Price500g))
	assert.NoError(t, mock.ExpectationsWereMet())
}
