package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// render draws a template with the identity, pending flashes and CSRF
// token injected, saving the session so popped flashes stay popped.
func render(c *fiber.Ctx, sess *session.Session, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if id, ok := identityFrom(sess); ok {
		data["User"] = id
	}
	data["Flashes"] = popFlashes(sess)
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Render(tmpl, data)
}

// flashRedirect records a transient notice and sends the visitor to a
// sensible prior screen. Every user-facing failure resolves this way
// rather than through a raw error page.
func flashRedirect(c *fiber.Ctx, sess *session.Session, level, message, location string) error {
	addFlash(sess, level, message)
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(location)
}
