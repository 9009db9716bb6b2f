package integration_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinema-management-system/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	dbName         = "cinema_management"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app      *TestApp
	postgres *PostgresContainer
	redis    *RedisContainer
}

// SetupSuite starts fresh Postgres and Redis containers for the suite and builds the application on them.
func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := startPostgres(ctx)
	s.Require().NoError(err)
	s.postgres = pg

	cache, err := startRedis(ctx)
	s.Require().NoError(err)
	s.redis = cache

	testApp, err := newTestApp(integrationConfig(pg.ConnectionString, cache.ConnectionString))
	s.Require().NoError(err)
	s.app = testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.Close()
	}

	var errs []error
	if s.postgres != nil {
		errs = append(errs, terminate(s.postgres.Container))
	}
	if s.redis != nil {
		errs = append(errs, terminate(s.redis.Container))
	}

	if err := errors.Join(errs...); err != nil {
		log.Printf("failed to terminate containers: %s", err)
	}
}

func integrationConfig(dbDSN, redisAddr string) app.Config {
	return app.Config{
		Port:     3000,
		Env:      "test",
		Timezone: "UTC",
		DB: app.DBConfig{
			DSN:          dbDSN,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisAddr,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		JWT: app.JWTConfig{
			Secret:     "integration-secret",
			Issuer:     "cinema-management-test",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		RateLimit: app.RateLimitConfig{
			Enabled:        true,
			Capacity:       1000,
			RefillInterval: time.Second,
		},
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          []http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, s.Cookies...)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
