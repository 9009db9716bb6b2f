package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type contextKey string

const (
	userContextKey   = contextKey("user")
	loggerContextKey = contextKey("logger")
)

// authenticatedUser is the caller identity taken from a verified access token.
type authenticatedUser struct {
	ID   uuid.UUID
	Role domain.Role
}

func (app *Application) contextSetUser(r *http.Request, user authenticatedUser) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, loggerContextKey, app.contextGetLogger(r).With("user_id", user.ID.String()))

	return r.WithContext(ctx)
}

func (app *Application) contextGetUser(r *http.Request) authenticatedUser {
	user, ok := r.Context().Value(userContextKey).(authenticatedUser)
	if !ok {
		panic("missing user in request context")
	}

	return user
}

// contextGetLogger returns the request scoped logger, building one from the request when none was stored.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	if logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}

	return app.logger.With(
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"uri", r.URL.RequestURI(),
	)
}
