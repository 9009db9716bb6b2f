package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrMovieNotFound     = errors.New("movie not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrHasSessions       = errors.New("resource is still referenced by sessions")

	ErrInvalidTimeWindow = errors.New("session outside opening hours or end before start")
	ErrSessionTooShort   = errors.New("session shorter than movie duration plus cleaning buffer")
	ErrHallDoubleBooked  = errors.New("hall already has an overlapping session")
	ErrMovieDoubleBooked = errors.New("movie already has an overlapping session")

	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrAmountPrecision       = errors.New("amount has more than two decimal places")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientForTicket = errors.New("insufficient balance to buy ticket")
	ErrInvalidTicketType     = errors.New("invalid ticket type")
	ErrTicketLimitReached    = errors.New("ticket has reached its usage limit")
	ErrSessionCanceled       = errors.New("session has been canceled")

	ErrInvalidShift = errors.New("shift end time must be after start time")
	ErrInvalidRole  = errors.New("invalid role")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
