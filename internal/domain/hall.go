package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MinHallCapacity = 15
	MaxHallCapacity = 30
)

type Hall struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Type          string
	Capacity      int
	Accessibility bool
	Maintenance   bool
	Images        []Image
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type HallRepository interface {
	Create(ctx context.Context, hall *Hall) error
	GetById(ctx context.Context, id uuid.UUID) (*Hall, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*Hall, *Metadata, error)
	Update(ctx context.Context, hall *Hall) error
	// Delete removes the hall's images and then the hall in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	AddImages(ctx context.Context, hallID uuid.UUID, images []Image) ([]Image, error)
	RemoveImage(ctx context.Context, imageID uuid.UUID) error
}
