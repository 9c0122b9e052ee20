package services_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loja/internal/domain"
	"loja/internal/repos"
	"loja/internal/services"
)

// A write failure anywhere in the checkout sequence must roll the whole
// transaction back. The in-memory store cannot fail on demand, so this
// drives the service against a mocked connection that errors on the
// payment insert.
func TestPlaceOrderRollsBackOnWriteFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT stock FROM products").
		WithArgs("mug-001").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
	mock.ExpectExec("UPDATE products SET stock").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	orderSvc := services.NewOrderService(repos.NewOrderRepo(db))
	cart := domain.Cart{"mug-001": {Name: "Mug", UnitPrice: 10.00, Qty: 2}}

	_, err = orderSvc.Place("cust-1", cart, "pix")
	require.Error(t, err)

	var stockErr *services.InsufficientStockError
	assert.False(t, errors.As(err, &stockErr), "a write failure is not a stock problem")
	assert.Contains(t, err.Error(), "insert payment")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A zero-row guarded decrement means a concurrent checkout took the
// stock between our read and the write; that surfaces as insufficiency,
// not success.
func TestPlaceOrderTreatsLostDecrementAsInsufficientStock(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT stock FROM products").
		WithArgs("mug-001").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
	mock.ExpectExec("UPDATE products SET stock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	orderSvc := services.NewOrderService(repos.NewOrderRepo(db))
	cart := domain.Cart{"mug-001": {Name: "Mug", UnitPrice: 10.00, Qty: 2}}

	_, err = orderSvc.Place("cust-1", cart, "pix")

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Mug", stockErr.ProductName)

	assert.NoError(t, mock.ExpectationsWereMet())
}
