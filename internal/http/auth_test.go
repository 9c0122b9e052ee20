package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestRegisterLoginLogoutFlow(t *testing.T) {
	app, db := newTestApp(t)

	j := register(t, app, "Ana", "ana@x.com", "secret1")

	// Stored credential is a hash, never the plaintext.
	var hash string
	if err := db.Get(&hash, `SELECT password_hash FROM customers WHERE email='ana@x.com'`); err != nil {
		t.Fatalf("select hash: %v", err)
	}
	if strings.Contains(hash, "secret1") || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected stored credential: %q", hash)
	}

	// Logged-in identity shows on the catalog page.
	resp := get(t, app, j, "/")
	if s := body(t, resp); !strings.Contains(s, "Ana") {
		t.Fatalf("expected greeting on catalog page, got: %s", s)
	}

	// Logout drops the identity; checkout bounces to login again.
	resp = get(t, app, j, "/logout")
	if resp.StatusCode != http.StatusFound || location(resp) != "/" {
		t.Fatalf("logout: status %d -> %q", resp.StatusCode, location(resp))
	}
	resp = get(t, app, j, "/checkout")
	if resp.StatusCode != http.StatusFound || location(resp) != "/login" {
		t.Fatalf("checkout after logout: status %d -> %q", resp.StatusCode, location(resp))
	}
}

func TestLoginWrongPasswordRedirectsBack(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Ana", "ana@x.com", "secret1")

	j := jar{}
	resp := postForm(t, app, j, "/login", url.Values{
		"email": {"ana@x.com"},
		"senha": {"wrong"},
	})
	if resp.StatusCode != http.StatusFound || location(resp) != "/login" {
		t.Fatalf("bad creds: status %d -> %q", resp.StatusCode, location(resp))
	}

	// No identity was established.
	resp = get(t, app, j, "/checkout")
	if location(resp) != "/login" {
		t.Fatalf("expected bounce to login, got %q", location(resp))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	register(t, app, "Ana", "ana@x.com", "secret1")

	j := jar{}
	resp := postForm(t, app, j, "/registrar", url.Values{
		"nome":  {"Outra Ana"},
		"email": {"ana@x.com"},
		"senha": {"another1"},
	})
	if resp.StatusCode != http.StatusFound || location(resp) != "/registrar" {
		t.Fatalf("duplicate register: status %d -> %q", resp.StatusCode, location(resp))
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM customers`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 customer after duplicate attempt, got %d", n)
	}

	// The transient notice lands on the next rendered page.
	resp = get(t, app, j, "/registrar")
	if s := body(t, resp); !strings.Contains(s, "já está cadastrado") {
		t.Fatalf("expected duplicate-email flash, got: %s", s)
	}
}
