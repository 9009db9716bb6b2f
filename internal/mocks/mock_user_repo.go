package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateFunc       func(ctx context.Context, user *domain.User) error
	GetByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	GetByIdFunc      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetAllFunc       func(ctx context.Context, pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error)
	GetEmployeesFunc func(ctx context.Context, pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error)
	UpdateRoleFunc   func(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, pagination)
}

func (m *MockUserRepo) GetEmployees(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error) {

	return m.GetEmployeesFunc(ctx, pagination)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	return m.UpdateRoleFunc(ctx, id, role)
}
