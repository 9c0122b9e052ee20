package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	applog "loja/internal/log"
	"loja/internal/repos"
	"loja/internal/services"
	"loja/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type OrderHandler struct {
	Cart     *services.CartService
	Order    *services.OrderService
	Repo     *repos.OrderRepo
	Sessions *session.Store
}

// Checkout renders the order summary. Auth and a non-empty cart are
// preconditions for both the summary and the placement POST.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	if _, ok := identityFrom(sess); !ok {
		return flashRedirect(c, sess, "warning", "Você precisa estar logado para finalizar a compra.", "/login")
	}
	cart := cartFrom(sess)
	if len(cart) == 0 {
		return flashRedirect(c, sess, "info", "Seu carrinho está vazio.", "/carrinho")
	}
	cv := h.Cart.View(cart)
	return render(c, sess, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	id, ok := identityFrom(sess)
	if !ok {
		return flashRedirect(c, sess, "warning", "Você precisa estar logado para finalizar a compra.", "/login")
	}
	cart := cartFrom(sess)
	if len(cart) == 0 {
		return flashRedirect(c, sess, "info", "Seu carrinho está vazio.", "/carrinho")
	}

	method := strings.TrimSpace(c.FormValue("tipo_pagamento"))
	if method == "" {
		method = "pix"
	}

	orderID, err := h.Order.Place(id.CustomerID, cart, method)
	if err != nil {
		var stockErr *services.InsufficientStockError
		if errors.As(err, &stockErr) {
			applog.Info(c, "order.place.stock", map[string]any{
				"customer_id": id.CustomerID,
				"product":     stockErr.ProductName,
				"available":   stockErr.Available,
			})
			msg := fmt.Sprintf("Estoque insuficiente para %q. Temos apenas %d un.", stockErr.ProductName, stockErr.Available)
			return flashRedirect(c, sess, "danger", msg, "/checkout")
		}
		// Unexpected write failure: log the cause, keep it off the page.
		applog.Error(c, "order.place.fail", err, map[string]any{"customer_id": id.CustomerID})
		return flashRedirect(c, sess, "danger", "Erro ao processar o pedido. Tente novamente.", "/checkout")
	}

	clearCart(sess)
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "customer_id": id.CustomerID})
	return flashRedirect(c, sess, "success", "Pedido realizado com sucesso!", "/pedido/"+orderID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	id, ok := identityFrom(sess)
	if !ok {
		return flashRedirect(c, sess, "warning", "Faça login para ver seus pedidos.", "/login")
	}

	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido não encontrado"})
	}
	order, payment, items, err := h.Repo.Get(oid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido não encontrado"})
	}
	if err != nil {
		applog.Error(c, "order.view.fail", err, map[string]any{"order_id": oid})
		return err
	}
	if order.CustomerID != id.CustomerID {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid, "customer_id": id.CustomerID})
		return flashRedirect(c, sess, "danger", "Você não tem permissão para ver este pedido.", "/")
	}

	return render(c, sess, "pedido", fiber.Map{"Order": order, "Payment": payment, "Items": items})
}
