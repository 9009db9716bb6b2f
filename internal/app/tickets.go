package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) ListTickets(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	tickets, err := app.ticketRepo.GetByUserId(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp[i] = toTicketResponse(ticket)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// BuyTicket charges the ticket price to the caller's wallet and issues the ticket in one transaction.
func (app *Application) BuyTicket(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	user := app.contextGetUser(r)

	var input api.BuyTicketRequest

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

	result, err := app.walletRepo.PurchaseTicket(r.Context(), user.ID, domain.TicketType(input.TicketType))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.metrics.ticketSold(r.Context(), input.TicketType)

	app.background(r, func() {
		owner, err := app.userRepo.GetById(context.Background(), user.ID)
		if err != nil {
			logger.Error("failed to load ticket owner for receipt", "error", err)
			return
		}

		data := map[string]any{
			"ticketID":   result.Ticket.ID.String(),
			"ticketType": string(result.Ticket.Type),
			"maxUses":    result.Ticket.Type.MaxUses(),
			"amount":     result.Transaction.Amount.StringFixed(2),
			"balance":    result.Balance.StringFixed(2),
			"currency":   result.Currency,
		}

		err = app.mailer.Send(owner.Email, "ticket_receipt.tmpl", data)
		if err != nil {
			logger.Error("failed to send ticket receipt", "error", err)
			return
		}

		logger.Info("ticket receipt sent", "ticket_id", result.Ticket.ID.String())
	})

	err = app.writeJSON(w, http.StatusOK, toWalletResponse(result), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTicketResponse(ticket *domain.Ticket) api.TicketResponse {
	return api.TicketResponse{
		Id:            ticket.ID,
		Type:          string(ticket.Type),
		PurchaseDate:  ticket.PurchaseDate,
		Attendances:   len(ticket.Attendances),
		RemainingUses: ticket.RemainingUses(),
	}
}
