package api

import (
	"time"

	"github.com/google/uuid"
)

type SessionRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	HallId    uuid.UUID `json:"hallId" validate:"required"`
	MovieId   uuid.UUID `json:"movieId" validate:"required"`
}

type SessionHall struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Capacity int       `json:"capacity"`
}

type SessionMovie struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"`
}

type SessionResponse struct {
	Id        uuid.UUID     `json:"id"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Status    string        `json:"status"`
	Hall      *SessionHall  `json:"hall,omitempty"`
	Movie     *SessionMovie `json:"movie,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
