package services

import (
	"errors"
	"sort"

	"loja/internal/domain"
	"loja/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

type CartService struct {
	Prods *repos.ProductRepo
}

func NewCartService(prods *repos.ProductRepo) *CartService {
	return &CartService{Prods: prods}
}

// Add puts qty units of a product into the cart. An existing line sums
// quantities; a new line snapshots the product's current name and price,
// and that snapshot is never refreshed afterward.
func (s *CartService) Add(cart domain.Cart, productID string, qty int) (string, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return "", ErrProductNotFound
	}
	if line, ok := cart[productID]; ok {
		line.Qty += qty
		cart[productID] = line
	} else {
		cart[productID] = domain.CartLine{Name: p.Name, UnitPrice: p.Price, Qty: qty}
	}
	return p.Name, nil
}

type CartViewLine struct {
	ProductID string
	Name      string
	UnitPrice float64
	Qty       int
	Subtotal  float64
}

type CartView struct {
	Items []CartViewLine
	Total float64
}

// View flattens the cart for rendering. A nil or empty cart produces an
// empty view with total zero.
func (s *CartService) View(cart domain.Cart) CartView {
	cv := CartView{Items: []CartViewLine{}}
	for pid, line := range cart {
		sub := line.UnitPrice * float64(line.Qty)
		cv.Items = append(cv.Items, CartViewLine{
			ProductID: pid,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			Subtotal:  sub,
		})
		cv.Total += sub
	}
	sort.Slice(cv.Items, func(i, j int) bool { return cv.Items[i].Name < cv.Items[j].Name })
	return cv
}
