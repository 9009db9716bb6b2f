package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) ListSessions(w http.ResponseWriter, r *http.Request) {
	app.listSessions(w, r, domain.SessionFilters{})
}

// listSessions completes filters from the status, startDate and endDate query parameters and writes one
// page of matching sessions.
func (app *Application) listSessions(w http.ResponseWriter, r *http.Request, filters domain.SessionFilters) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters.Range, err = app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.SessionStatus(s)
		if !status.Valid() {
			app.badRequestResponse(w, r, errors.New("status must be one of scheduled, completed, canceled"))
			return
		}
		filters.Status = &status
	}

	sessions, metadata, err := app.sessionRepo.GetAll(r.Context(), filters, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := make([]api.SessionResponse, len(sessions))
	for i, session := range sessions {
		data[i] = app.toSessionResponse(session)
	}

	err = app.writeJSON(w, http.StatusOK, toPaginatedResponse(data, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := app.readSessionRequest(w, r)
	if !ok {
		return
	}

	err := app.sessionRepo.Create(r.Context(), session)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.metrics.sessionsScheduled.Add(r.Context(), 1)

	err = app.writeJSON(w, http.StatusCreated, app.toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateSession replaces the session's window, hall and movie. The schedule is checked again with the
// session itself excluded from the overlap tests.
func (app *Application) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, ok := app.readSessionRequest(w, r)
	if !ok {
		return
	}

	session.ID = id

	err = app.sessionRepo.Update(r.Context(), session)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.sessionRepo.Delete(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Session deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.sessionRepo.Cancel(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("session canceled", "session_id", id.String())

	err = app.writeJSON(w, http.StatusOK, app.toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readSessionRequest decodes and validates a session body. Times are moved into the cinema timezone so
// that opening hours are evaluated on the local calendar day.
func (app *Application) readSessionRequest(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	var input api.SessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return nil, false
	}

	return &domain.Session{
		StartTime: input.StartTime.In(app.location),
		EndTime:   input.EndTime.In(app.location),
		HallID:    input.HallId,
		MovieID:   input.MovieId,
	}, true
}

func (app *Application) toSessionResponse(session *domain.Session) api.SessionResponse {
	resp := api.SessionResponse{
		Id:        session.ID,
		StartTime: session.StartTime.In(app.location),
		EndTime:   session.EndTime.In(app.location),
		Status:    string(session.Status),
		CreatedAt: session.CreatedAt,
	}

	if session.Hall != nil {
		resp.Hall = &api.SessionHall{
			Id:       session.Hall.ID,
			Name:     session.Hall.Name,
			Type:     session.Hall.Type,
			Capacity: session.Hall.Capacity,
		}
	}

	if session.Movie != nil {
		resp.Movie = &api.SessionMovie{
			Id:       session.Movie.ID,
			Title:    session.Movie.Title,
			Duration: session.Movie.Duration,
		}
	}

	return resp
}
