package app

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/metinatakli/cinema-management-system/internal/domain"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate requires a valid Bearer access token and stores the caller in the request context.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		header := r.Header.Get("Authorization")
		if header == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			app.invalidAccessTokenResponse(w, r)
			return
		}

		claims, err := app.tokens.Parse(token)
		if err != nil {
			app.invalidAccessTokenResponse(w, r)
			return
		}

		userID, err := claims.UserID()
		if err != nil || !claims.Role.Valid() {
			app.invalidAccessTokenResponse(w, r)
			return
		}

		r = app.contextSetUser(r, authenticatedUser{ID: userID, Role: claims.Role})

		next.ServeHTTP(w, r)
	})
}

// requireRole must run after authenticate.
func (app *Application) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := app.contextGetUser(r)

			if !domain.Authorize(user.Role, roles...) {
				app.contextGetLogger(r).Warn("role not allowed", "role", user.Role)
				app.forbiddenResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimit applies the per client token bucket. A limiter failure is logged and the request let through.
func (app *Application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		decision, err := app.limiter.Allow(r.Context(), ip)
		if err != nil {
			app.contextGetLogger(r).Error("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfterSeconds()))
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
