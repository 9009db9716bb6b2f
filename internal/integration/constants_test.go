package integration_test

import (
	"time"
)

const (
	// User related constants
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	// Catalog related constants
	TestHallType      = "IMAX"
	TestHallCapacity  = 20
	TestMovieTitle    = "Test Movie"
	TestMovieDuration = 120
)

var (
	TestSessionDate = time.Date(2030, 3, 14, 0, 0, 0, 0, time.UTC)
)
