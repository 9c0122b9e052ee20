package domain

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Stock       int     `db:"stock"`
	ImageURL    string  `db:"image_url"`
}

type Order struct {
	ID         string  `db:"id"`
	CustomerID string  `db:"customer_id"`
	Status     string  `db:"status"` // informational label, never transitioned after creation
	Total      float64 `db:"total"`
	CreatedAt  string  `db:"created_at"`
}

type OrderItem struct {
	ID        string  `db:"id"`
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"` // snapshot at checkout, decoupled from live price
}

type Payment struct {
	ID      string  `db:"id"`
	OrderID string  `db:"order_id"`
	Method  string  `db:"method"`
	Amount  float64 `db:"amount"`
	Status  string  `db:"status"`
}
