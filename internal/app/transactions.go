package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) Deposit(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	var input api.DepositRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	result, err := app.walletRepo.Deposit(r.Context(), user.ID, input.Amount)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.metrics.deposits.Add(r.Context(), 1)

	err = app.writeJSON(w, http.StatusOK, toWalletResponse(result), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Withdraw(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	var input api.WithdrawRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	result, err := app.walletRepo.Withdraw(r.Context(), user.ID, input.Amount)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.metrics.withdrawals.Add(r.Context(), 1)

	err = app.writeJSON(w, http.StatusOK, toWalletResponse(result), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTransactions(w http.ResponseWriter, r *http.Request) {
	app.writeLedger(w, r, app.contextGetUser(r).ID)
}

func (app *Application) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.writeLedger(w, r, id)
}

func (app *Application) writeLedger(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	ledger, err := app.walletRepo.GetLedger(r.Context(), userID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.LedgerResponse{
		Balance:      ledger.Balance,
		Currency:     ledger.Currency,
		Transactions: make([]api.TransactionResponse, len(ledger.Transactions)),
	}

	for i, transaction := range ledger.Transactions {
		resp.Transactions[i] = *toTransactionResponse(transaction)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toWalletResponse(result *domain.WalletResult) api.WalletResponse {
	resp := api.WalletResponse{
		Balance:     result.Balance,
		Transaction: toTransactionResponse(result.Transaction),
	}

	if result.Ticket != nil {
		ticket := toTicketResponse(result.Ticket)
		resp.Ticket = &ticket
	}

	return resp
}

func toTransactionResponse(transaction *domain.Transaction) *api.TransactionResponse {
	if transaction == nil {
		return nil
	}

	return &api.TransactionResponse{
		Id:       transaction.ID,
		Amount:   transaction.Amount,
		Currency: transaction.Currency,
		Type:     string(transaction.Type),
		Date:     transaction.Date,
	}
}
