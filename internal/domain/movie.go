package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID
	Title       string
	Description string
	// Duration is the running time in minutes.
	Duration  int
	Images    []Image
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MovieFilters struct {
	Pagination
	// Term matches title or description using full text search. Empty matches every movie.
	Term string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddImages(ctx context.Context, movieID uuid.UUID, images []Image) ([]Image, error)
	RemoveImage(ctx context.Context, imageID uuid.UUID) error
}
