package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) CreateEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	var input api.EmployeeScheduleRequest

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

	err = domain.CheckShift(input.StartTime, input.EndTime)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	employee, err := app.userRepo.GetById(r.Context(), input.EmployeeId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			err = domain.ErrEmployeeNotFound
		}

		app.handleError(w, r, err)
		return
	}

	if !employee.Role.IsEmployee() {
		app.handleError(w, r, domain.ErrEmployeeNotFound)
		return
	}

	date, err := time.ParseInLocation(dateQueryLayout, input.Date, app.location)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedule := domain.EmployeeSchedule{
		EmployeeID:  employee.ID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Date:        date,
		Description: input.Description,
	}

	err = app.scheduleRepo.Create(r.Context(), &schedule)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScheduleResponse(&schedule), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOwnSchedule(w http.ResponseWriter, r *http.Request) {
	app.writeSchedule(w, r, app.contextGetUser(r).ID)
}

func (app *Application) GetEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.writeSchedule(w, r, id)
}

func (app *Application) writeSchedule(w http.ResponseWriter, r *http.Request, employeeID uuid.UUID) {
	dateRange, err := app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedules, err := app.scheduleRepo.GetByEmployee(r.Context(), employeeID, dateRange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.EmployeeScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp[i] = toScheduleResponse(schedule)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toScheduleResponse(schedule *domain.EmployeeSchedule) api.EmployeeScheduleResponse {
	return api.EmployeeScheduleResponse{
		Id:          schedule.ID,
		EmployeeId:  schedule.EmployeeID,
		StartTime:   schedule.StartTime,
		EndTime:     schedule.EndTime,
		Date:        schedule.Date.Format(dateQueryLayout),
		Description: schedule.Description,
		CreatedAt:   schedule.CreatedAt,
	}
}
