package domain

import "encoding/gob"

// Cart lives only in the visitor's session, never in the database.
// It maps a product id to the line added for it.
type Cart map[string]CartLine

// CartLine snapshots the product's name and price at the moment it was
// added. Checkout charges the snapshot price, not the live catalog price.
type CartLine struct {
	Name      string
	UnitPrice float64
	Qty       int
}

// Identity is the authenticated visitor carried in the session.
type Identity struct {
	CustomerID string
	Name       string
}

func (c Cart) Total() float64 {
	total := 0.0
	for _, l := range c {
		total += l.UnitPrice * float64(l.Qty)
	}
	return total
}

func init() {
	// Session values are gob-encoded by the fiber session store.
	gob.Register(Cart{})
	gob.Register(Identity{})
}
