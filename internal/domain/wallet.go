package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit         TransactionType = "deposit"
	TransactionWithdrawal      TransactionType = "withdrawal"
	TransactionTicketPurchased TransactionType = "ticket_purchased"
)

// Transaction is an append-only ledger entry. Amount is always positive; Type gives the direction.
type Transaction struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Currency string
	Type     TransactionType
	Date     time.Time
}

// AmountScale is the number of decimal places balances and ledger amounts are stored with.
const AmountScale = 2

// CheckAmount rejects non-positive amounts and amounts finer than a cent.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrAmountPrecision
	}
	return nil
}

type WalletResult struct {
	Balance     decimal.Decimal
	Currency    string
	Transaction *Transaction
	Ticket      *Ticket
}

type Ledger struct {
	Balance      decimal.Decimal
	Currency     string
	Transactions []*Transaction
}

// Credit adds a deposit to the user's balance.
func (u *User) Credit(amount decimal.Decimal) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}

	u.Balance = u.Balance.Add(amount)
	return nil
}

// Debit removes a withdrawal from the user's balance.
func (u *User) Debit(amount decimal.Decimal) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if u.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	u.Balance = u.Balance.Sub(amount)
	return nil
}

// Charge removes the cost of a ticket of type t from the user's balance and returns the cost.
func (u *User) Charge(t TicketType) (decimal.Decimal, error) {
	cost, err := t.Cost()
	if err != nil {
		return decimal.Zero, err
	}
	if u.Balance.LessThan(cost) {
		return decimal.Zero, ErrInsufficientForTicket
	}

	u.Balance = u.Balance.Sub(cost)
	return cost, nil
}

// WalletRepository applies balance mutations. Each call locks the user row, applies the rule and appends
// exactly one Transaction within one database transaction; on error nothing is written.
type WalletRepository interface {
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*WalletResult, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*WalletResult, error)
	PurchaseTicket(ctx context.Context, userID uuid.UUID, ticketType TicketType) (*WalletResult, error)
	GetLedger(ctx context.Context, userID uuid.UUID) (*Ledger, error)
}
