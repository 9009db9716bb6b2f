package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClockLayout is the HH:MM layout of shift boundaries.
const ClockLayout = "15:04"

type EmployeeSchedule struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	StartTime   string
	EndTime     string
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// CheckShift validates that both boundaries parse as HH:MM and that the shift ends after it starts.
func CheckShift(start, end string) error {
	s, err := time.Parse(ClockLayout, start)
	if err != nil {
		return ErrInvalidShift
	}

	e, err := time.Parse(ClockLayout, end)
	if err != nil {
		return ErrInvalidShift
	}

	if !e.After(s) {
		return ErrInvalidShift
	}

	return nil
}

type EmployeeScheduleRepository interface {
	Create(ctx context.Context, schedule *EmployeeSchedule) error
	GetByEmployee(ctx context.Context, employeeID uuid.UUID, dateRange DateRange) ([]*EmployeeSchedule, error)
}
