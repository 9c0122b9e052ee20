package services

import (
	"errors"
	"fmt"

	"loja/internal/domain"
	"loja/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds       = errors.New("invalid email or password")
	ErrDuplicateEmail = errors.New("email already registered")
)

type AuthService struct {
	Customers *repos.CustomerRepo
}

func NewAuthService(customers *repos.CustomerRepo) *AuthService {
	return &AuthService{Customers: customers}
}

// Register creates a customer, storing only the bcrypt hash of the
// password. The duplicate check is a lookup before the insert; a race
// between two registrations with the same email falls through to the
// unique index and surfaces as a write failure.
func (s *AuthService) Register(name, email, password, phone string) (*domain.Customer, error) {
	if _, err := s.Customers.ByEmail(email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := domain.Customer{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(hash),
		Phone: phone,
	}
	if err := s.Customers.Insert(c); err != nil {
		return nil, fmt.Errorf("register customer: %w", err)
	}
	return &c, nil
}

// Authenticate verifies the email/password pair. Unknown email and bad
// password both collapse into ErrBadCreds.
func (s *AuthService) Authenticate(email, password string) (*domain.Customer, error) {
	c, err := s.Customers.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return c, nil
}
