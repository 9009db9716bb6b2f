package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetUser(r)

	user, err := app.userRepo.GetById(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.contextGetLogger(r).Error("user in access token not found in DB")
		}

		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListUsers(w http.ResponseWriter, r *http.Request) {
	app.listUsers(w, r, app.userRepo.GetAll)
}

func (app *Application) ListEmployees(w http.ResponseWriter, r *http.Request) {
	app.listUsers(w, r, app.userRepo.GetEmployees)
}

func (app *Application) listUsers(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error)) {

	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	users, metadata, err := list(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := make([]api.UserResponse, len(users))
	for i, user := range users {
		data[i] = toUserResponse(user)
	}

	err = app.writeJSON(w, http.StatusOK, toPaginatedResponse(data, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// AddEmployee promotes an existing user to one of the employee roles.
func (app *Application) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var input api.AddEmployeeRequest

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

	user, err := app.userRepo.UpdateRole(r.Context(), input.Id, domain.Role(input.Role))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			err = domain.ErrUserNotFound
		}

		app.handleError(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("user promoted to employee", "employee_id", user.ID.String(), "role", user.Role)

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var input api.CreateEmployeeRequest

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

	user := domain.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  domain.Role(input.Role),
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toUserResponse(&user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toUserResponse(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Balance:   user.Balance,
		Currency:  user.Currency,
		CreatedAt: user.CreatedAt,
	}
}
