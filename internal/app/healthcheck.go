package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-management-system/api"
)

const healthCheckTimeout = 2 * time.Second

// healthCheck probes one dependency. A non-nil error marks it down.
type healthCheck struct {
	name  string
	probe func(ctx context.Context) error
}

// dependencyChecks pings whichever of the database and cache the application was built with.
func (app *Application) dependencyChecks() []healthCheck {
	var checks []healthCheck

	if app.db != nil {
		checks = append(checks, healthCheck{name: "postgres", probe: app.db.Ping})
	}
	if app.redis != nil {
		checks = append(checks, healthCheck{name: "redis", probe: func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		}})
	}

	return checks
}

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	for _, check := range app.healthChecks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(app.healthChecks))
		}

		if err := check.probe(ctx); err != nil {
			app.logger.Warn("health check failed", "dependency", check.name, "error", err)
			resp.Checks[check.name] = "DOWN"
			resp.Status = "DOWN"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.name] = "UP"
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
