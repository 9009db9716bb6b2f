package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketRegular TicketType = "regular"
	TicketSuper   TicketType = "super"
)

var (
	regularTicketCost = decimal.NewFromInt(10)
	superTicketCost   = decimal.NewFromInt(20)
)

func (t TicketType) Valid() bool {
	return t == TicketRegular || t == TicketSuper
}

// Cost returns the ticket price in the wallet currency.
func (t TicketType) Cost() (decimal.Decimal, error) {
	switch t {
	case TicketRegular:
		return regularTicketCost, nil
	case TicketSuper:
		return superTicketCost, nil
	default:
		return decimal.Zero, ErrInvalidTicketType
	}
}

// MaxUses is the number of attendances a ticket of this type admits.
func (t TicketType) MaxUses() int {
	switch t {
	case TicketSuper:
		return 10
	case TicketRegular:
		return 1
	default:
		return 0
	}
}

type Ticket struct {
	ID           uuid.UUID
	Type         TicketType
	PurchaseDate time.Time
	UserID       uuid.UUID
	Attendances  []Attendance
}

func (t *Ticket) RemainingUses() int {
	remaining := t.Type.MaxUses() - len(t.Attendances)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAttend returns ErrTicketLimitReached once the ticket's attendances reach its cap.
func (t *Ticket) CanAttend() error {
	if t.RemainingUses() == 0 {
		return ErrTicketLimitReached
	}
	return nil
}

type TicketRepository interface {
	// GetByIdWithAttendances loads a ticket together with its attendance history.
	GetByIdWithAttendances(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByUserId(ctx context.Context, userID uuid.UUID) ([]*Ticket, error)
}
