package integration_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionTestSuite struct {
	BaseSuite
	adminToken string
	hallA      uuid.UUID
	hallB      uuid.UUID
	movie      uuid.UUID
	otherMovie uuid.UUID
}

func TestSessionSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	t := s.T()

	truncateAll(t, s.app.DB)

	_, s.adminToken = createUser(t, s.app, "admin@example.com", domain.RoleAdmin, "0")
	s.hallA = createHall(t, s.app.DB, "Hall A")
	s.hallB = createHall(t, s.app.DB, "Hall B")
	s.movie = createMovie(t, s.app.DB, TestMovieTitle, TestMovieDuration)
	s.otherMovie = createMovie(t, s.app.DB, "Another Movie", 90)
}

func (s *SessionTestSuite) schedule(hallID, movieID uuid.UUID, start, end time.Time) (*http.Response, api.ErrorResponse) {
	var errResp api.ErrorResponse

	res := do(s.T(), s.app, http.MethodPost, "/sessions", api.SessionRequest{
		StartTime: start,
		EndTime:   end,
		HallId:    hallID,
		MovieId:   movieID,
	}, s.adminToken, nil)

	if res.StatusCode != http.StatusCreated {
		decodeBody(s.T(), res, &errResp)
	}

	return res, errResp
}

func (s *SessionTestSuite) TestParallelSchedulingBooksTheHallOnce() {
	statuses := race(s.T(), s.app, 6, http.MethodPost, "/sessions", api.SessionRequest{
		StartTime: at(14, 0),
		EndTime:   at(16, 30),
		HallId:    s.hallA,
		MovieId:   s.movie,
	}, s.adminToken)

	s.Equal(1, countStatus(statuses, http.StatusCreated), "statuses: %v", statuses)
	s.Equal(5, countStatus(statuses, http.StatusBadRequest), "statuses: %v", statuses)
	s.Equal(1, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM sessions WHERE hall_id = $1", s.hallA))
}

func (s *SessionTestSuite) TestScheduleRules() {
	createSession(s.T(), s.app.DB, s.hallA, s.movie, at(10, 0), at(12, 30))

	tests := []struct {
		name        string
		hallID      uuid.UUID
		movieID     uuid.UUID
		start, end  time.Time
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "hall already busy",
			hallID:      s.hallA,
			movieID:     s.otherMovie,
			start:       at(12, 0),
			end:         at(14, 0),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "There is already a session scheduled in this hall during the requested time.",
		},
		{
			name:        "movie already playing elsewhere, touching end counts",
			hallID:      s.hallB,
			movieID:     s.movie,
			start:       at(12, 30),
			end:         at(15, 0),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "This movie is already playing in another hall at the same time.",
		},
		{
			name:        "shorter than movie plus cleaning",
			hallID:      s.hallB,
			movieID:     s.movie,
			start:       at(14, 0),
			end:         at(16, 0),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Session duration must be at least half-hour longer than movie duration.",
		},
		{
			name:        "past closing time",
			hallID:      s.hallB,
			movieID:     s.otherMovie,
			start:       at(18, 30),
			end:         at(20, 30),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Session must be scheduled within cinema open hours (9:00 AM to 8:00 PM) and end time must be after start time.",
		},
		{
			name:        "unknown hall",
			hallID:      uuid.New(),
			movieID:     s.otherMovie,
			start:       at(14, 0),
			end:         at(16, 0),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Hall not found",
		},
		{
			name:       "free slot",
			hallID:     s.hallB,
			movieID:    s.otherMovie,
			start:      at(13, 0),
			end:        at(15, 0),
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res, errResp := s.schedule(tt.hallID, tt.movieID, tt.start, tt.end)

			s.Equal(tt.wantStatus, res.StatusCode)
			s.Equal(tt.wantMessage, errResp.Message)
		})
	}

	s.Equal(2, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM sessions"))
}

func (s *SessionTestSuite) TestCanceledSessionKeepsItsSlotUntilDeleted() {
	t := s.T()

	id := createSession(t, s.app.DB, s.hallA, s.movie, at(10, 0), at(12, 30))

	var canceled api.SessionResponse
	res := do(t, s.app, http.MethodPatch, "/sessions/"+id.String()+"/cancel", nil, s.adminToken, &canceled)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, string(domain.SessionCanceled), canceled.Status)

	res, errResp := s.schedule(s.hallA, s.otherMovie, at(10, 0), at(12, 0))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "There is already a session scheduled in this hall during the requested time.", errResp.Message)

	res = do(t, s.app, http.MethodDelete, "/sessions/"+id.String(), nil, s.adminToken, nil)
	require.Less(t, res.StatusCode, 300)

	res, errResp = s.schedule(s.hallA, s.otherMovie, at(10, 0), at(12, 0))
	assert.Equal(t, http.StatusCreated, res.StatusCode, errResp.Message)
}

func (s *SessionTestSuite) TestUpdateIgnoresItself() {
	t := s.T()

	id := createSession(t, s.app.DB, s.hallA, s.movie, at(10, 0), at(12, 30))

	var updated api.SessionResponse
	res := do(t, s.app, http.MethodPut, "/sessions/"+id.String(), api.SessionRequest{
		StartTime: at(10, 30),
		EndTime:   at(13, 0),
		HallId:    s.hallA,
		MovieId:   s.movie,
	}, s.adminToken, &updated)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, id, updated.Id)
	assert.True(t, updated.StartTime.Equal(at(10, 30)))
}

func (s *SessionTestSuite) TestClientsCannotSchedule() {
	t := s.T()

	_, clientToken := createUser(t, s.app, TestUserEmail, domain.RoleClient, "0")

	res := do(t, s.app, http.MethodPost, "/sessions", api.SessionRequest{
		StartTime: at(10, 0),
		EndTime:   at(12, 30),
		HallId:    s.hallA,
		MovieId:   s.movie,
	}, clientToken, nil)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, 0, countRows(t, s.app.DB, "SELECT COUNT(*) FROM sessions"))
}
