package api

import (
	"time"

	"github.com/google/uuid"
)

// CreateHallForm is decoded from a multipart form; uploaded files arrive in the "images" part.
type CreateHallForm struct {
	Name          string `schema:"name" validate:"required,max=100"`
	Description   string `schema:"description" validate:"max=1000"`
	Type          string `schema:"type" validate:"required,max=50"`
	Capacity      int    `schema:"capacity" validate:"required,min=15,max=30"`
	Accessibility bool   `schema:"accessibility"`
	Maintenance   bool   `schema:"maintenance"`
}

type UpdateHallRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=1000"`
	Type          *string `json:"type" validate:"omitempty,max=50"`
	Capacity      *int    `json:"capacity" validate:"omitempty,min=15,max=30"`
	Accessibility *bool   `json:"accessibility"`
	Maintenance   *bool   `json:"maintenance"`
}

type HallResponse struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Capacity      int       `json:"capacity"`
	Accessibility bool      `json:"accessibility"`
	Maintenance   bool      `json:"maintenance"`
	Images        []Image   `json:"images"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateMovieForm struct {
	Title       string `schema:"title" validate:"required,max=200"`
	Description string `schema:"description" validate:"max=2000"`
	Duration    int    `schema:"duration" validate:"required,gt=0"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0"`
}

type MovieResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}
