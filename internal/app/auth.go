package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

const refreshTokenCookie = "refreshToken"

func (app *Application) Signup(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SignupRequest

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
		Role:  domain.RoleClient,
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			logger.Warn("signup attempt for existing email")
		}

		app.handleError(w, r, err)
		return
	}

	accessToken, err := app.issueTokens(w, r, &user)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.background(r, func() {
		data := map[string]any{
			"name":     user.Name,
			"currency": user.Currency,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			logger.Error("failed to send welcome email", "error", err)
			return
		}

		logger.Info("welcome email sent")
	})

	err = app.writeJSON(w, http.StatusCreated, api.AccessTokenResponse{AccessToken: accessToken}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	user, err := app.userRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent user")
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !match {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	accessToken, err := app.issueTokens(w, r, user)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.AccessTokenResponse{AccessToken: accessToken}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err == nil && cookie.Value != "" {
		err = app.tokenRepo.Delete(r.Context(), domain.HashRefreshToken(cookie.Value))
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.clearRefreshCookie(w)

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Logged out successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// RefreshToken exchanges the refresh cookie for a new access token and rotates the refresh token.
func (app *Application) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		app.errorResponse(w, r, http.StatusUnauthorized, ErrRefreshTokenNotFound)
		return
	}

	refreshToken, err := app.tokenRepo.Rotate(
		r.Context(),
		domain.HashRefreshToken(cookie.Value),
		func(userID uuid.UUID) (*domain.RefreshToken, error) {
			return domain.GenerateRefreshToken(userID, app.config.JWT.RefreshTTL)
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			app.clearRefreshCookie(w)
		}

		app.handleError(w, r, err)
		return
	}

	user, err := app.userRepo.GetById(r.Context(), refreshToken.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	accessToken, err := app.tokens.Generate(user.ID, user.Role)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setRefreshCookie(w, refreshToken)

	err = app.writeJSON(w, http.StatusOK, api.AccessTokenResponse{AccessToken: accessToken}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// issueTokens stores a fresh refresh token for the user, sets its cookie and returns a signed access token.
func (app *Application) issueTokens(w http.ResponseWriter, r *http.Request, user *domain.User) (string, error) {
	accessToken, err := app.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	refreshToken, err := domain.GenerateRefreshToken(user.ID, app.config.JWT.RefreshTTL)
	if err != nil {
		return "", err
	}

	err = app.tokenRepo.Create(r.Context(), refreshToken)
	if err != nil {
		return "", err
	}

	app.setRefreshCookie(w, refreshToken)

	return accessToken, nil
}

func (app *Application) setRefreshCookie(w http.ResponseWriter, token *domain.RefreshToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token.Plaintext,
		Path:     "/",
		Expires:  token.Expiry,
		MaxAge:   int(time.Until(token.Expiry).Seconds()),
		HttpOnly: true,
		Secure:   app.config.Env != "dev" && app.config.Env != "test",
		SameSite: http.SameSiteStrictMode,
	})
}

func (app *Application) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   app.config.Env != "dev" && app.config.Env != "test",
		SameSite: http.SameSiteStrictMode,
	})
}
