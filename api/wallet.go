package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BuyTicketRequest struct {
	TicketType string `json:"ticketType" validate:"required,ticket_type"`
}

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0,cents"`
	Card   string          `json:"card" validate:"required,credit_card"`
}

type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0,cents"`
	BankAccount string          `json:"bankAccount" validate:"required,min=8,max=34"`
}

type TransactionResponse struct {
	Id       uuid.UUID       `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Date     time.Time       `json:"date"`
}

type TicketResponse struct {
	Id            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	Attendances   int       `json:"attendances"`
	RemainingUses int       `json:"remainingUses"`
}

type WalletResponse struct {
	Balance     decimal.Decimal      `json:"balance"`
	Transaction *TransactionResponse `json:"transaction"`
	Ticket      *TicketResponse      `json:"ticket,omitempty"`
}

type LedgerResponse struct {
	Balance      decimal.Decimal       `json:"balance"`
	Currency     string                `json:"currency"`
	Transactions []TransactionResponse `json:"transactions"`
}
