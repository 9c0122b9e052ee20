package handlers

import (
	applog "loja/internal/log"
	"loja/internal/repos"
	"loja/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type CatalogHandler struct {
	Prods    *repos.ProductRepo
	Sessions *session.Store
}

func (h *CatalogHandler) Index(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	products, err := h.Prods.List()
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return err
	}
	return render(c, sess, "index", fiber.Map{"Products": products})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Produto não encontrado"})
	}
	p, err := h.Prods.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Produto não encontrado"})
	}
	return render(c, sess, "produto", fiber.Map{"P": p})
}
