package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAttendanceRepo struct {
	mock.Mock
	domain.AttendanceRepository
}

func (m *MockAttendanceRepo) Attend(ctx context.Context, sessionID, ticketID uuid.UUID) (*domain.Attendance, error) {
	args := m.Called(ctx, sessionID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepo) GetHallAttendance(
	ctx context.Context,
	hallID uuid.UUID,
	dateRange domain.DateRange) (*domain.HallAttendance, error) {

	args := m.Called(ctx, hallID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HallAttendance), args.Error(1)
}

func (m *MockAttendanceRepo) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttendanceRepo) GetOverview(
	ctx context.Context,
	dateRange domain.DateRange) (*domain.AttendanceOverview, error) {

	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceOverview), args.Error(1)
}
