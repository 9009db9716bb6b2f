package validator

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired       = "is required"
	ErrEmail          = "must be a valid email address"
	ErrRole           = "must be a valid role"
	ErrEmployeeRole   = "must be one of confectionery, projectionist, reception"
	ErrTicketType     = "must be either regular or super"
	ErrSessionStatus  = "must be one of scheduled, completed, canceled"
	ErrClock          = "must be a time in HH:MM format"
	ErrDate           = "must be a date in YYYY-MM-DD format"
	ErrCreditCard     = "must be a valid credit card number"
	ErrCents          = "must have at most two decimal places"
	ErrDefaultInvalid = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// money amounts are validated as numbers so that gt/gte/lte apply
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterValidation("role", validateRole)
	validator.RegisterValidation("employee_role", validateEmployeeRole)
	validator.RegisterValidation("ticket_type", validateTicketType)
	validator.RegisterValidation("session_status", validateSessionStatus)
	validator.RegisterValidation("clock", validateClock)
	validator.RegisterValidation("cents", validateCents)

	return validator
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}

	return nil
}

func validateRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).Valid()
}

func validateEmployeeRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).IsEmployee()
}

func validateTicketType(fl validator.FieldLevel) bool {
	return domain.TicketType(fl.Field().String()).Valid()
}

func validateSessionStatus(fl validator.FieldLevel) bool {
	return domain.SessionStatus(fl.Field().String()).Valid()
}

// validateCents runs on the float64 produced by decimalValue.
func validateCents(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Float64 {
		return false
	}
	return !errors.Is(domain.CheckAmount(decimal.NewFromFloat(fl.Field().Float())), domain.ErrAmountPrecision)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.ClockLayout, fl.Field().String())
	return err == nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", err.Param())
	case "role":
		return ErrRole
	case "employee_role":
		return ErrEmployeeRole
	case "ticket_type":
		return ErrTicketType
	case "session_status":
		return ErrSessionStatus
	case "clock":
		return ErrClock
	case "datetime":
		return ErrDate
	case "credit_card":
		return ErrCreditCard
	case "cents":
		return ErrCents
	default:
		return ErrDefaultInvalid
	}
}
