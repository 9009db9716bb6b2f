package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockHallRepo struct {
	domain.HallRepository
	CreateFunc      func(ctx context.Context, hall *domain.Hall) error
	GetByIdFunc     func(ctx context.Context, id uuid.UUID) (*domain.Hall, error)
	GetAllFunc      func(ctx context.Context, pagination domain.Pagination) ([]*domain.Hall, *domain.Metadata, error)
	UpdateFunc      func(ctx context.Context, hall *domain.Hall) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	AddImagesFunc   func(ctx context.Context, hallID uuid.UUID, images []domain.Image) ([]domain.Image, error)
	RemoveImageFunc func(ctx context.Context, imageID uuid.UUID) error
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	return m.CreateFunc(ctx, hall)
}

func (m *MockHallRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Hall, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockHallRepo) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Hall, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, pagination)
}

func (m *MockHallRepo) Update(ctx context.Context, hall *domain.Hall) error {
	return m.UpdateFunc(ctx, hall)
}

func (m *MockHallRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockHallRepo) AddImages(ctx context.Context, hallID uuid.UUID, images []domain.Image) ([]domain.Image, error) {
	return m.AddImagesFunc(ctx, hallID, images)
}

func (m *MockHallRepo) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	return m.RemoveImageFunc(ctx, imageID)
}
