package app

import (
	"net/http"

	"github.com/metinatakli/cinema-management-system/api"
)

// Attend admits a ticket to a session, consuming one of the ticket's uses.
func (app *Application) Attend(w http.ResponseWriter, r *http.Request) {
	var input api.AttendRequest

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

	attendance, err := app.attendanceRepo.Attend(r.Context(), input.SessionId, input.TicketId)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.metrics.attendances.Add(r.Context(), 1)

	resp := api.AttendanceResponse{
		Id:        attendance.ID,
		SessionId: attendance.SessionID,
		TicketId:  attendance.TicketID,
		CreatedAt: attendance.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHallAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	dateRange, err := app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	report, err := app.attendanceRepo.GetHallAttendance(r.Context(), id, dateRange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HallAttendanceResponse{
		HallId:          report.HallID,
		AttendanceData:  make([]api.SessionAttendanceData, len(report.Sessions)),
		TotalAttendance: report.TotalAttendances,
	}

	for i, entry := range report.Sessions {
		resp.AttendanceData[i] = api.SessionAttendanceData{
			SessionId:       entry.SessionID,
			StartTime:       entry.StartTime.In(app.location),
			EndTime:         entry.EndTime.In(app.location),
			AttendanceCount: entry.Attendances,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	count, err := app.attendanceRepo.CountBySession(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.SessionAttendanceResponse{SessionId: id, AttendanceCount: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAttendanceOverview(w http.ResponseWriter, r *http.Request) {
	dateRange, err := app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	overview, err := app.attendanceRepo.GetOverview(r.Context(), dateRange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AttendanceOverviewResponse{
		StartDate:         overview.Range.StartOrNil(),
		EndDate:           overview.Range.EndOrNil(),
		OverallAttendance: overview.OverallAttendance,
		Sessions:          overview.Sessions,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
