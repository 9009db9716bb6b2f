package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image is a stored upload owned by a hall or a movie.
type Image struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
