package api

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeScheduleRequest struct {
	EmployeeId  uuid.UUID `json:"employeeId" validate:"required"`
	StartTime   string    `json:"startTime" validate:"required,clock"`
	EndTime     string    `json:"endTime" validate:"required,clock"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	Description string    `json:"description" validate:"max=500"`
}

type EmployeeScheduleResponse struct {
	Id          uuid.UUID `json:"id"`
	EmployeeId  uuid.UUID `json:"employeeId"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
