package handlers

import (
	"encoding/gob"

	"loja/internal/domain"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys. The session is the only home of the cart and the
// authenticated identity; neither is persisted to the database.
const (
	sessCart     = "cart"
	sessIdentity = "identity"
	sessFlashes  = "flashes"
)

// Flash is a transient notice surfaced on the next rendered page.
type Flash struct {
	Level   string // success | info | warning | danger
	Message string
}

func init() {
	gob.Register([]Flash{})
}

func cartFrom(sess *session.Session) domain.Cart {
	if cart, ok := sess.Get(sessCart).(domain.Cart); ok {
		return cart
	}
	return domain.Cart{}
}

func saveCart(sess *session.Session, cart domain.Cart) {
	sess.Set(sessCart, cart)
}

func clearCart(sess *session.Session) {
	sess.Delete(sessCart)
}

func identityFrom(sess *session.Session) (domain.Identity, bool) {
	id, ok := sess.Get(sessIdentity).(domain.Identity)
	return id, ok && id.CustomerID != ""
}

func setIdentity(sess *session.Session, id domain.Identity) {
	sess.Set(sessIdentity, id)
}

// dropIdentity logs the visitor out. The cart stays in the session so a
// visitor who logs back in keeps it.
func dropIdentity(sess *session.Session) {
	sess.Delete(sessIdentity)
}

func addFlash(sess *session.Session, level, message string) {
	flashes, _ := sess.Get(sessFlashes).([]Flash)
	sess.Set(sessFlashes, append(flashes, Flash{Level: level, Message: message}))
}

func popFlashes(sess *session.Session) []Flash {
	flashes, _ := sess.Get(sessFlashes).([]Flash)
	sess.Delete(sessFlashes)
	return flashes
}
