package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockSessionRepo struct {
	domain.SessionRepository
	CreateFunc  func(ctx context.Context, session *domain.Session) error
	UpdateFunc  func(ctx context.Context, session *domain.Session) error
	GetByIdFunc func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetAllFunc  func(
		ctx context.Context,
		filters domain.SessionFilters,
		pagination domain.Pagination) ([]*domain.Session, *domain.Metadata, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
	CancelFunc func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return m.CreateFunc(ctx, session)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	return m.UpdateFunc(ctx, session)
}

func (m *MockSessionRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockSessionRepo) GetAll(
	ctx context.Context,
	filters domain.SessionFilters,
	pagination domain.Pagination) ([]*domain.Session, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters, pagination)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockSessionRepo) Cancel(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return m.CancelFunc(ctx, id)
}
