package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepo struct {
	mock.Mock
	domain.WalletRepository
}

func (m *MockWalletRepo) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WalletResult, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletResult), args.Error(1)
}

func (m *MockWalletRepo) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WalletResult, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletResult), args.Error(1)
}

func (m *MockWalletRepo) PurchaseTicket(
	ctx context.Context,
	userID uuid.UUID,
	ticketType domain.TicketType) (*domain.WalletResult, error) {

	args := m.Called(ctx, userID, ticketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletResult), args.Error(1)
}

func (m *MockWalletRepo) GetLedger(ctx context.Context, userID uuid.UUID) (*domain.Ledger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}
