package repos

import (
	"loja/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) ByEmail(email string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT id,name,email,password_hash,phone FROM customers WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) ByID(id string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT id,name,email,password_hash,phone FROM customers WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Insert(c domain.Customer) error {
	_, err := r.db.Exec(`INSERT INTO customers(id,name,email,password_hash,phone) VALUES(?,?,?,?,?)`,
		c.ID, c.Name, c.Email, c.Hash, c.Phone)
	return err
}

func (r *CustomerRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM customers`)
	return n, err
}
