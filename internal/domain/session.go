package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCanceled  SessionStatus = "canceled"
)

func (s SessionStatus) Valid() bool {
	return s == SessionScheduled || s == SessionCompleted || s == SessionCanceled
}

const (
	OpeningHour = 9
	ClosingHour = 20
	// CleaningBuffer is the minimum number of minutes a session must exceed the movie's running time by.
	CleaningBuffer = 30
)

type Session struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    SessionStatus
	HallID    uuid.UUID
	MovieID   uuid.UUID
	Hall      *Hall
	Movie     *Movie
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the session intersects [start, end]. Touching endpoints count as overlap.
func (s *Session) Overlaps(start, end time.Time) bool {
	return !s.StartTime.After(end) && !s.EndTime.Before(start)
}

// CheckSessionWindow validates a proposed session against the end-after-start rule, the cinema opening
// hours and the movie running time. Opening hours are evaluated on the calendar date of each timestamp in
// its own location: start must not be before 09:00 of its day and end must not be after 20:00 of its day.
func CheckSessionWindow(start, end time.Time, movieDuration int) error {
	if !end.After(start) {
		return ErrInvalidTimeWindow
	}

	opening := time.Date(start.Year(), start.Month(), start.Day(), OpeningHour, 0, 0, 0, start.Location())
	closing := time.Date(end.Year(), end.Month(), end.Day(), ClosingHour, 0, 0, 0, end.Location())

	if start.Before(opening) || end.After(closing) {
		return ErrInvalidTimeWindow
	}

	minLength := time.Duration(movieDuration+CleaningBuffer) * time.Minute
	if end.Sub(start) < minLength {
		return ErrSessionTooShort
	}

	return nil
}

type SessionFilters struct {
	HallID  *uuid.UUID
	MovieID *uuid.UUID
	Status  *SessionStatus
	Range   DateRange
}

type SessionRepository interface {
	// Create locks the target hall and movie, runs CheckSessionWindow and the hall and movie overlap
	// checks, and inserts the session in a single transaction.
	Create(ctx context.Context, session *Session) error
	// Update applies the same checks as Create, ignoring the session being updated.
	Update(ctx context.Context, session *Session) error
	GetById(ctx context.Context, id uuid.UUID) (*Session, error)
	GetAll(ctx context.Context, filters SessionFilters, pagination Pagination) ([]*Session, *Metadata, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) (*Session, error)
}
