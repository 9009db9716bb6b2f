package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/auth"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/metinatakli/cinema-management-system/internal/mailer"
	"github.com/metinatakli/cinema-management-system/internal/mocks"
	"github.com/metinatakli/cinema-management-system/internal/ratelimit"
	"github.com/metinatakli/cinema-management-system/internal/validator"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type mockLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	m.keys = append(m.keys, key)
	return m.decision, m.err
}

func newTestApplication(opts ...func(*Application)) *Application {
	metrics, err := newMetrics()
	if err != nil {
		panic(err)
	}

	app := &Application{
		config: Config{
			Env: "test",
			JWT: JWTConfig{
				Secret:     testJWTSecret,
				Issuer:     "test",
				AccessTTL:  15 * time.Minute,
				RefreshTTL: 24 * time.Hour,
			},
		},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:         mailer.NewMockMailer(),
		tokens:         auth.NewTokenManager(testJWTSecret, "test", 15*time.Minute),
		limiter:        &mockLimiter{decision: ratelimit.Decision{Allowed: true, Limit: 10, Remaining: 9}},
		metrics:        metrics,
		location:       time.UTC,
		userRepo:       &mocks.MockUserRepo{},
		tokenRepo:      &mocks.MockRefreshTokenRepo{},
		hallRepo:       &mocks.MockHallRepo{},
		movieRepo:      &mocks.MockMovieRepo{},
		sessionRepo:    &mocks.MockSessionRepo{},
		ticketRepo:     &mocks.MockTicketRepo{},
		walletRepo:     &mocks.MockWalletRepo{},
		attendanceRepo: &mocks.MockAttendanceRepo{},
		scheduleRepo:   &mocks.MockEmployeeScheduleRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// executeRequest builds a JSON request. A nil body sends no payload.
func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// authorize signs an access token for the given identity and attaches it to r.
func authorize(t *testing.T, app *Application, r *http.Request, userID uuid.UUID, role domain.Role) {
	token, err := app.tokens.Generate(userID, role)
	require.NoError(t, err)

	r.Header.Set("Authorization", "Bearer "+token)
}

// serve runs the request through the full router, middleware included.
func serve(app *Application, w *httptest.ResponseRecorder, r *http.Request) {
	app.Routes().ServeHTTP(w, r)
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T

	err := json.NewDecoder(w.Body).Decode(&v)
	require.NoError(t, err, "failed to decode response")

	return v
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if w.Code != wantStatus {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, wantStatus, w.Body.String())
	}

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	var resp api.ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if resp.Timestamp.IsZero() {
		t.Errorf("error response is missing its timestamp")
	}

	if wantErrMessage == "" || resp.Message == wantErrMessage {
		return
	}

	for _, vErr := range resp.ValidationErrors {
		if vErr.Issue == wantErrMessage {
			return
		}
	}

	t.Errorf("Error message = %v (validation errors %v), want %v", resp.Message, resp.ValidationErrors, wantErrMessage)
}

func ptr[T any](v T) *T {
	return &v
}
