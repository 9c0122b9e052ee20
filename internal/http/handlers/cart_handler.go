package handlers

import (
	"errors"
	"fmt"

	applog "loja/internal/log"
	"loja/internal/services"
	"loja/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type CartHandler struct {
	Cart     *services.CartService
	Sessions *session.Store
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	productID, ok := validate.ID(c.FormValue("produto_id"))
	if !ok {
		return flashRedirect(c, sess, "danger", "Produto não encontrado.", "/")
	}
	qty := validate.Qty(c.FormValue("quantidade"))

	cart := cartFrom(sess)
	name, err := h.Cart.Add(cart, productID, qty)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return flashRedirect(c, sess, "danger", "Produto não encontrado.", "/")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": productID})
		return err
	}
	saveCart(sess, cart)

	applog.Info(c, "cart.add", map[string]any{"product_id": productID, "qty": qty})
	return flashRedirect(c, sess, "success", fmt.Sprintf("%q adicionado ao carrinho!", name), "/carrinho")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	cv := h.Cart.View(cartFrom(sess))
	return render(c, sess, "carrinho", fiber.Map{"Cart": cv})
}
