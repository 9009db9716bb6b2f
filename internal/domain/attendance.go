package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	TicketID  uuid.UUID
	CreatedAt time.Time
}

type SessionAttendance struct {
	SessionID   uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	Attendances int
}

type HallAttendance struct {
	HallID           uuid.UUID
	Sessions         []SessionAttendance
	TotalAttendances int
}

type AttendanceOverview struct {
	Range             DateRange
	OverallAttendance int
	Sessions          int
}

// CheckAttendance applies the admission rules in order: ticket cap, session existence, session state.
// A nil session means the session could not be found.
func CheckAttendance(ticket *Ticket, session *Session) error {
	if err := ticket.CanAttend(); err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.Status == SessionCanceled {
		return ErrSessionCanceled
	}
	return nil
}

type AttendanceRepository interface {
	// Attend locks the ticket, loads its attendances and the session, runs CheckAttendance and records one
	// attendance in a single transaction.
	Attend(ctx context.Context, sessionID, ticketID uuid.UUID) (*Attendance, error)
	GetHallAttendance(ctx context.Context, hallID uuid.UUID, dateRange DateRange) (*HallAttendance, error)
	// CountBySession returns ErrSessionNotFound for an unknown session.
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	GetOverview(ctx context.Context, dateRange DateRange) (*AttendanceOverview, error)
}
