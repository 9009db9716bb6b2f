package api

import (
	"time"

	"github.com/google/uuid"
)

type AttendRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
	TicketId  uuid.UUID `json:"ticketId" validate:"required"`
}

type AttendanceResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"sessionId"`
	TicketId  uuid.UUID `json:"ticketId"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionAttendanceData struct {
	SessionId       uuid.UUID `json:"sessionId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	AttendanceCount int       `json:"attendanceCount"`
}

type HallAttendanceResponse struct {
	HallId          uuid.UUID               `json:"hallId"`
	AttendanceData  []SessionAttendanceData `json:"attendanceData"`
	TotalAttendance int                     `json:"totalAttendance"`
}

type SessionAttendanceResponse struct {
	SessionId       uuid.UUID `json:"sessionId"`
	AttendanceCount int       `json:"attendanceCount"`
}

type AttendanceOverviewResponse struct {
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	OverallAttendance int        `json:"overallAttendance"`
	Sessions          int        `json:"sessions"`
}
