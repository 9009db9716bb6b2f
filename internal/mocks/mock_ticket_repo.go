package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	GetByIdWithAttendancesFunc func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	GetByUserIdFunc            func(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
}

func (m *MockTicketRepo) GetByIdWithAttendances(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	return m.GetByIdWithAttendancesFunc(ctx, id)
}

func (m *MockTicketRepo) GetByUserId(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	return m.GetByUserIdFunc(ctx, userID)
}
