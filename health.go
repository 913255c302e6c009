package trainjatri

import (
	"net/http"

	"github.com/theoremus-urban-solutions/trainjatri/config"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := a.Schedule.Refresh(false)
	a.Metrics.SchedulesLoaded.Set(float64(status.SchedulesCount))
	a.Metrics.StationsLoaded.Set(float64(status.StationsCount))

	healthy := status.SchedulesCount > 0
	state := "healthy"
	code := http.StatusOK
	if !healthy {
		state = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respond(w, code, envelope{
		"status":       state,
		"version":      config.Version,
		"data_sources": status,
		"crowd":        a.Crowd.Summary(),
		"modules": envelope{
			"schedule_store": healthy,
			"delay_model":    true,
			"crowd_store":    true,
		},
	})
}
