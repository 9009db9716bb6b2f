package app

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	appvalidator "github.com/metinatakli/cinema-management-system/internal/validator"
)

const (
	ErrInternalServer       = "The server encountered a problem and could not process your request"
	ErrNotFound             = "The requested resource not found"
	ErrUnauthorized         = "You must be authenticated to access this resource"
	ErrInvalidAccessToken   = "Invalid or expired access token"
	ErrForbidden            = "You do not have permission to access this resource"
	ErrInvalidCredentials   = "Invalid credentials"
	ErrRefreshTokenNotFound = "Refresh token not found"
	ErrInvalidRefreshToken  = "Invalid refresh token"
	ErrFailedValidation     = "One or more fields have invalid values"
	ErrRateLimitExceeded    = "Too many requests, please try again later"
)

// domainErrors maps domain failures to the status and message returned to clients. The first match wins.
var domainErrors = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
	{domain.ErrHallNotFound, http.StatusNotFound, "Hall not found"},
	{domain.ErrMovieNotFound, http.StatusNotFound, "Movie not found"},
	{domain.ErrSessionNotFound, http.StatusNotFound, "Session not found."},
	{domain.ErrTicketNotFound, http.StatusNotFound, "Ticket not found."},
	{domain.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found."},
	{domain.ErrImageNotFound, http.StatusNotFound, "Image not found"},
	{domain.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{domain.ErrHasSessions, http.StatusBadRequest, "Cannot delete while sessions are still scheduled for it."},
	{
		domain.ErrInvalidTimeWindow,
		http.StatusBadRequest,
		"Session must be scheduled within cinema open hours (9:00 AM to 8:00 PM) and end time must be after start time.",
	},
	{domain.ErrSessionTooShort, http.StatusBadRequest, "Session duration must be at least half-hour longer than movie duration."},
	{domain.ErrHallDoubleBooked, http.StatusBadRequest, "There is already a session scheduled in this hall during the requested time."},
	{domain.ErrMovieDoubleBooked, http.StatusBadRequest, "This movie is already playing in another hall at the same time."},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "Amount must be greater than zero."},
	{domain.ErrAmountPrecision, http.StatusBadRequest, "Amount must have at most two decimal places."},
	{domain.ErrInsufficientBalance, http.StatusBadRequest, "Insufficient balance."},
	{domain.ErrInsufficientForTicket, http.StatusBadRequest, "Insufficient balance to buy ticket."},
	{domain.ErrInvalidTicketType, http.StatusBadRequest, "Invalid ticket type."},
	{domain.ErrTicketLimitReached, http.StatusBadRequest, "Ticket has reached its limit"},
	{domain.ErrSessionCanceled, http.StatusBadRequest, "This session has been cancelled."},
	{domain.ErrInvalidShift, http.StatusBadRequest, "End time must be after start time."},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role."},
	{domain.ErrInvalidRefreshToken, http.StatusUnauthorized, ErrInvalidRefreshToken},
}

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, api.ErrorResponse{Message: message})
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, resp api.ErrorResponse) {
	resp.RequestId = middleware.GetReqID(r.Context())
	resp.Timestamp = time.Now()

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// handleError is the single boundary between handlers and clients: known domain errors get their mapped
// status and message, everything else is logged and reported as a 500.
func (app *Application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				app.logError(r, err)
			}
			app.errorResponse(w, r, m.status, m.message)
			return
		}
	}

	app.serverErrorResponse(w, r, err)
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	resp := api.ErrorResponse{Message: ErrInternalServer}
	if app.config.Env == "dev" {
		resp.Detail = err.Error()
	}

	app.writeError(w, r, http.StatusInternalServerError, resp)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *Application) invalidAccessTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidAccessToken)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, ErrRateLimitExceeded)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	issues := make([]api.ValidationError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		issues = append(issues, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: issues,
	}

	err = app.writeJSON(w, http.StatusBadRequest, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
