package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies ...http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// do sends a JSON request through the router and decodes the response body into dst when dst is not nil.
func do(t testing.TB, app *TestApp, method, path string, body any, token string, dst any) *http.Response {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	req, err := prepareRequest(method, path, reader, headers)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()

	if dst != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(dst))
	}

	return res
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		TRUNCATE users, refresh_tokens, halls, hall_images, movies, movie_images, sessions,
			tickets, transactions, session_attendances, employee_schedules RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

// createUser inserts a user with TestUserPassword and returns its id together with a signed access token.
func createUser(t testing.TB, app *TestApp, email string, role domain.Role, balance string) (uuid.UUID, string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
	require.NoError(t, err)

	var id uuid.UUID
	err = app.DB.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role, balance)
		VALUES ($1, $2, $3, $4, $5::numeric)
		RETURNING id
	`, TestUserName, email, hash, string(role), balance).Scan(&id)
	require.NoError(t, err)

	token, err := app.Tokens.Generate(id, role)
	require.NoError(t, err)

	return id, token
}

func createHall(t testing.TB, db *pgxpool.Pool, name string) uuid.UUID {
	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO halls (name, type, capacity) VALUES ($1, $2, $3) RETURNING id
	`, name, TestHallType, TestHallCapacity).Scan(&id)
	require.NoError(t, err)

	return id
}

func createMovie(t testing.TB, db *pgxpool.Pool, title string, duration int) uuid.UUID {
	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO movies (title, duration) VALUES ($1, $2) RETURNING id
	`, title, duration).Scan(&id)
	require.NoError(t, err)

	return id
}

func createSession(t testing.TB, db *pgxpool.Pool, hallID, movieID uuid.UUID, start, end time.Time) uuid.UUID {
	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO sessions (start_time, end_time, hall_id, movie_id) VALUES ($1, $2, $3, $4) RETURNING id
	`, start, end, hallID, movieID).Scan(&id)
	require.NoError(t, err)

	return id
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// at returns the given hour and minute on TestSessionDate in UTC.
func at(hour, minute int) time.Time {
	return time.Date(TestSessionDate.Year(), TestSessionDate.Month(), TestSessionDate.Day(), hour, minute, 0, 0, time.UTC)
}

const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 20 * time.Millisecond
)

func decodeBody(t testing.TB, res *http.Response, dst any) {
	require.NoError(t, json.NewDecoder(res.Body).Decode(dst))
}

func findCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// race sends the same request n times at once and returns the status code of each response.
func race(t testing.TB, app *TestApp, n int, method, path string, body any, token string) []int {
	js, err := json.Marshal(body)
	require.NoError(t, err)

	handler := app.App.Routes()
	statuses := make([]int, n)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(method, path, bytes.NewReader(js))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			rec := httptest.NewRecorder()
			<-start
			handler.ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}()
	}

	close(start)
	wg.Wait()

	return statuses
}

func countStatus(statuses []int, status int) int {
	n := 0
	for _, s := range statuses {
		if s == status {
			n++
		}
	}
	return n
}
