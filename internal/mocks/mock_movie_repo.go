package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc      func(ctx context.Context, movie *domain.Movie) error
	GetByIdFunc     func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	GetAllFunc      func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error)
	UpdateFunc      func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	AddImagesFunc   func(ctx context.Context, movieID uuid.UUID, images []domain.Image) ([]domain.Image, error)
	RemoveImageFunc func(ctx context.Context, imageID uuid.UUID) error
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockMovieRepo) AddImages(ctx context.Context, movieID uuid.UUID, images []domain.Image) ([]domain.Image, error) {
	return m.AddImagesFunc(ctx, movieID, images)
}

func (m *MockMovieRepo) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	return m.RemoveImageFunc(ctx, imageID)
}
