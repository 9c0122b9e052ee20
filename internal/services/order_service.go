package services

import (
	"errors"
	"fmt"
	"sort"

	"loja/internal/domain"
	"loja/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError names the product that blocked checkout and how
// many units are actually available.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: only %d available", e.ProductName, e.Available)
}

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// Place converts the cart into a persisted order with line items, a
// payment record and stock decrements, all inside one transaction. On
// any failure the whole transaction rolls back and the caller keeps the
// cart so the visitor can retry.
func (s *OrderService) Place(customerID string, cart domain.Cart, method string) (string, error) {
	if len(cart) == 0 {
		return "", ErrEmptyCart
	}

	// Charged total comes from the cart's price snapshots, not the live
	// catalog prices.
	total := cart.Total()
	orderID := uuid.NewString()

	// Stable statement order across runs.
	productIDs := make([]string, 0, len(cart))
	for pid := range cart {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)

	err := s.Orders.Transact(func(tx *sqlx.Tx) error {
		if err := s.Orders.CreateTx(tx, domain.Order{
			ID:         orderID,
			CustomerID: customerID,
			Status:     "processing",
			Total:      total,
		}); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, pid := range productIDs {
			line := cart[pid]
			stock, err := s.Orders.StockTx(tx, pid)
			if err != nil {
				return fmt.Errorf("read stock for %s: %w", pid, err)
			}
			if stock < line.Qty {
				return &InsufficientStockError{ProductName: line.Name, Available: stock}
			}
			ok, err := s.Orders.DecrementStockTx(tx, pid, line.Qty)
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", pid, err)
			}
			if !ok {
				// Lost the row to a concurrent checkout after our read.
				return &InsufficientStockError{ProductName: line.Name, Available: stock}
			}
			if err := s.Orders.InsertItemTx(tx, domain.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   orderID,
				ProductID: pid,
				Qty:       line.Qty,
				UnitPrice: line.UnitPrice,
			}); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		if err := s.Orders.InsertPaymentTx(tx, domain.Payment{
			ID:      uuid.NewString(),
			OrderID: orderID,
			Method:  method,
			Amount:  total,
			Status:  "processing",
		}); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}
