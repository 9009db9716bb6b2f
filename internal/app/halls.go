package app

import (
	"net/http"

	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) ListHalls(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	halls, metadata, err := app.hallRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := make([]api.HallResponse, len(halls))
	for i, hall := range halls {
		data[i] = toHallResponse(hall)
	}

	err = app.writeJSON(w, http.StatusOK, toPaginatedResponse(data, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateHall(w http.ResponseWriter, r *http.Request) {
	var input api.CreateHallForm

	images, err := app.readMultipartForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hall := domain.Hall{
		Name:          input.Name,
		Description:   input.Description,
		Type:          input.Type,
		Capacity:      input.Capacity,
		Accessibility: input.Accessibility,
		Maintenance:   input.Maintenance,
		Images:        images,
	}

	err = app.hallRepo.Create(r.Context(), &hall)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toHallResponse(&hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateHall applies a partial update; absent fields keep their stored value.
func (app *Application) UpdateHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateHallRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if input.Name != nil {
		hall.Name = *input.Name
	}
	if input.Description != nil {
		hall.Description = *input.Description
	}
	if input.Type != nil {
		hall.Type = *input.Type
	}
	if input.Capacity != nil {
		hall.Capacity = *input.Capacity
	}
	if input.Accessibility != nil {
		hall.Accessibility = *input.Accessibility
	}
	if input.Maintenance != nil {
		hall.Maintenance = *input.Maintenance
	}

	err = app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.hallRepo.Delete(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Hall deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) AddHallImages(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	images, err := app.readMultipartForm(w, r, nil)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if len(images) == 0 {
		app.badRequestResponse(w, r, errNoImages)
		return
	}

	stored, err := app.hallRepo.AddImages(r.Context(), id, images)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiImages(stored), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RemoveHallImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := app.readUUIDParam(r, "imageId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.hallRepo.RemoveImage(r.Context(), imageID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Image removed successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListHallSessions(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.listSessions(w, r, domain.SessionFilters{HallID: &id})
}

func toHallResponse(hall *domain.Hall) api.HallResponse {
	return api.HallResponse{
		Id:            hall.ID,
		Name:          hall.Name,
		Description:   hall.Description,
		Type:          hall.Type,
		Capacity:      hall.Capacity,
		Accessibility: hall.Accessibility,
		Maintenance:   hall.Maintenance,
		Images:        toApiImages(hall.Images),
		CreatedAt:     hall.CreatedAt,
	}
}
