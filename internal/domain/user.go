package domain

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleClient        Role = "client"
	RoleProjectionist Role = "projectionist"
	RoleReception     Role = "reception"
	RoleConfectionery Role = "confectionery"
	RoleAdmin         Role = "admin"
	RoleSuperAdmin    Role = "super_admin"
)

var (
	// EmployeeRoles are the roles listed as employees and assignable through the employee endpoints.
	EmployeeRoles = []Role{RoleConfectionery, RoleProjectionist, RoleReception}

	StaffRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleProjectionist, RoleReception, RoleConfectionery}
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProjectionist, RoleReception, RoleConfectionery, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (r Role) IsEmployee() bool {
	return slices.Contains(EmployeeRoles, r)
}

// Authorize reports whether role is one of the allowed roles.
func Authorize(role Role, allowed ...Role) bool {
	return slices.Contains(allowed, role)
}

const DefaultCurrency = "EUR"

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  password
	Role      Role
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetById(ctx context.Context, id uuid.UUID) (*User, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*User, *Metadata, error)
	GetEmployees(ctx context.Context, pagination Pagination) ([]*User, *Metadata, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error)
}
