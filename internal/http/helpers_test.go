package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"loja/internal/http/handlers"
	"loja/internal/repos"
)

// newTestApp wires the real handlers over an in-memory store. CSRF and
// cookie encryption stay out so forms can be posted directly; the
// hardened chain gets its own coverage via newHardenedApp.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.MustExec(`INSERT INTO products(id,name,description,price,stock,image_url)
	  VALUES('mug-001','Mug','Ceramic mug',10.00,5,'')`)

	sessions := session.New(session.Config{KeyLookup: "cookie:sid"})
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	mount(app, handlers.NewDeps(db, sessions))
	return app, db
}

func mount(app *fiber.App, deps *handlers.Deps) {
	app.Get("/", deps.CatalogHandler.Index)
	app.Get("/produto/:id", deps.CatalogHandler.Detail)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", deps.AuthHandler.Login)
	app.Get("/registrar", deps.AuthHandler.RegisterForm)
	app.Post("/registrar", deps.AuthHandler.Register)
	app.Get("/logout", deps.AuthHandler.Logout)
	app.Get("/carrinho", deps.CartHandler.View)
	app.Post("/carrinho", deps.CartHandler.Add)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/checkout", deps.OrderHandler.Place)
	app.Get("/pedido/:id", deps.OrderHandler.View)
}

// jar carries cookies between app.Test calls, one visitor per jar.
type jar map[string]string

func (j jar) update(resp *http.Response) {
	for _, c := range resp.Cookies() {
		if c.Value == "" {
			delete(j, c.Name)
			continue
		}
		j[c.Name] = c.Value
	}
}

func (j jar) apply(req *http.Request) {
	for name, value := range j {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func get(t *testing.T, app *fiber.App, j jar, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	j.apply(req)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	j.update(resp)
	return resp
}

func postForm(t *testing.T, app *fiber.App, j jar, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	j.apply(req)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	j.update(resp)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func location(resp *http.Response) string {
	return resp.Header.Get("Location")
}

// register creates an account and logs it in, returning the visitor's jar.
func register(t *testing.T, app *fiber.App, name, email, password string) jar {
	t.Helper()
	j := jar{}
	resp := postForm(t, app, j, "/registrar", url.Values{
		"nome":  {name},
		"email": {email},
		"senha": {password},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	resp = postForm(t, app, j, "/login", url.Values{
		"email": {email},
		"senha": {password},
	})
	if resp.StatusCode != http.StatusFound || location(resp) != "/" {
		t.Fatalf("login %s: status %d -> %q", email, resp.StatusCode, location(resp))
	}
	return j
}
