package repos

import (
	"database/sql"

	"loja/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Transact runs fn inside a transaction. Any error (or panic) rolls the
// whole transaction back; nothing is partially committed.
func (r *OrderRepo) Transact(fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OrderRepo) CreateTx(tx *sqlx.Tx, o domain.Order) error {
	_, err := tx.Exec(`
	  INSERT INTO orders(id, customer_id, status, total, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerID, o.Status, o.Total)
	return err
}

func (r *OrderRepo) InsertItemTx(tx *sqlx.Tx, it domain.OrderItem) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(id, order_id, product_id, qty, unit_price)
	  VALUES(?, ?, ?, ?, ?)
	`, it.ID, it.OrderID, it.ProductID, it.Qty, it.UnitPrice)
	return err
}

func (r *OrderRepo) InsertPaymentTx(tx *sqlx.Tx, p domain.Payment) error {
	_, err := tx.Exec(`
	  INSERT INTO payments(id, order_id, method, amount, status)
	  VALUES(?, ?, ?, ?, ?)
	`, p.ID, p.OrderID, p.Method, p.Amount, p.Status)
	return err
}

// StockTx re-reads the product's current stock inside the transaction.
// Checkout trusts this value, not the cart's snapshot.
func (r *OrderRepo) StockTx(tx *sqlx.Tx, productID string) (int, error) {
	var n int
	err := tx.Get(&n, `SELECT stock FROM products WHERE id=?`, productID)
	return n, err
}

// DecrementStockTx subtracts qty only while enough stock remains. It
// reports whether a row was updated; a false result means another
// checkout won the stock between our read and this write.
func (r *OrderRepo) DecrementStockTx(tx *sqlx.Tx, productID string, qty int) (bool, error) {
	res, err := tx.Exec(`
	  UPDATE products SET stock = stock - ?
	  WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ---------- Order detail (used by /pedido/:id) ----------

type OrderItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

// Get returns the order, its payment if one exists, and its lines with
// product names resolved for display.
func (r *OrderRepo) Get(orderID string) (domain.Order, *domain.Payment, []OrderItemRow, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id, customer_id, status, total, created_at
	  FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, nil, err
	}

	var pay domain.Payment
	payment := &pay
	if err := r.db.Get(&pay, `
	  SELECT id, order_id, method, amount, status
	  FROM payments WHERE order_id = ?
	`, orderID); err != nil {
		if err != sql.ErrNoRows {
			return domain.Order{}, nil, nil, err
		}
		payment = nil
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
	  SELECT oi.product_id, p.name, oi.qty, oi.unit_price,
	         (oi.qty * oi.unit_price) AS subtotal
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY p.name
	`, orderID); err != nil {
		return domain.Order{}, nil, nil, err
	}

	return o, payment, items, nil
}
