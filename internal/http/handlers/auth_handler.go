package handlers

import (
	"errors"

	"loja/internal/domain"
	applog "loja/internal/log"
	"loja/internal/services"
	"loja/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Sessions *session.Store
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "login", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	email := c.FormValue("email")
	password := c.FormValue("senha")

	cust, err := h.Auth.Authenticate(email, password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return flashRedirect(c, sess, "danger", "Email ou senha inválidos.", "/login")
	}

	setIdentity(sess, domain.Identity{CustomerID: cust.ID, Name: cust.Name})
	applog.Audit(c, "auth.login.success", map[string]any{"customer_id": cust.ID})
	return flashRedirect(c, sess, "success", "Login bem-sucedido!", "/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "registrar", nil)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}

	name, ok := validate.Name(c.FormValue("nome"))
	if !ok {
		return flashRedirect(c, sess, "danger", "Informe um nome válido.", "/registrar")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return flashRedirect(c, sess, "danger", "Informe um email válido.", "/registrar")
	}
	password := c.FormValue("senha")
	if !validate.Password(password) {
		return flashRedirect(c, sess, "danger", "A senha deve ter entre 6 e 72 caracteres.", "/registrar")
	}
	phone, ok := validate.Phone(c.FormValue("telefone"))
	if !ok {
		return flashRedirect(c, sess, "danger", "Informe um telefone válido.", "/registrar")
	}

	cust, err := h.Auth.Register(name, email, password, phone)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			applog.Security(c, "auth.register.duplicate", map[string]any{"email": email})
			return flashRedirect(c, sess, "danger", "Este email já está cadastrado.", "/registrar")
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return flashRedirect(c, sess, "danger", "Erro ao cadastrar. Tente novamente.", "/registrar")
	}

	applog.Audit(c, "auth.register.success", map[string]any{"customer_id": cust.ID})
	return flashRedirect(c, sess, "success", "Cadastro realizado com sucesso! Faça o login.", "/login")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	dropIdentity(sess)
	applog.Audit(c, "auth.logout", nil)
	return flashRedirect(c, sess, "info", "Você foi desconectado.", "/")
}
