package handlers

import (
	"loja/internal/repos"
	"loja/internal/services"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, sessions *session.Store) *Deps {
	custRepo := repos.NewCustomerRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(custRepo)
	cartSvc := services.NewCartService(prodRepo)
	orderSvc := services.NewOrderService(orderRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc, Sessions: sessions},
		CatalogHandler: &CatalogHandler{Prods: prodRepo, Sessions: sessions},
		CartHandler:    &CartHandler{Cart: cartSvc, Sessions: sessions},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, Sessions: sessions},
	}
}
