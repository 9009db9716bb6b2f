package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockEmployeeScheduleRepo struct {
	domain.EmployeeScheduleRepository
	CreateFunc        func(ctx context.Context, schedule *domain.EmployeeSchedule) error
	GetByEmployeeFunc func(
		ctx context.Context,
		employeeID uuid.UUID,
		dateRange domain.DateRange) ([]*domain.EmployeeSchedule, error)
}

func (m *MockEmployeeScheduleRepo) Create(ctx context.Context, schedule *domain.EmployeeSchedule) error {
	return m.CreateFunc(ctx, schedule)
}

func (m *MockEmployeeScheduleRepo) GetByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
	dateRange domain.DateRange) ([]*domain.EmployeeSchedule, error) {

	return m.GetByEmployeeFunc(ctx, employeeID, dateRange)
}
