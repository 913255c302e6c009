package trainjatri

import (
	"net/http"

	"github.com/theoremus-urban-solutions/trainjatri/crowd"
	"github.com/theoremus-urban-solutions/trainjatri/delay"
)

func (a *App) handleDelayAnalytics(w http.ResponseWriter, r *http.Request) {
	train := queryParam(r, "train")
	station := queryParam(r, "station")

	if train != "" {
		stats, err := a.Delays.HistoricalStats(train, station)
		fields := envelope{
			"train_number": train,
			"stats":        statsPayload(stats, err),
		}
		if station != "" {
			fields["station"] = station
		}
		respond(w, http.StatusOK, fields)
		return
	}

	// The service-wide rollup has always been a placeholder.
	respond(w, http.StatusOK, envelope{
		"stats": envelope{
			"total_trains":       len(a.Schedule.Snapshot().TrainNumbers()),
			"trains_with_delays": 0,
			"average_delay":      0,
		},
	})
}

// statsPayload serializes missing-data sentinels as an inline error object
// rather than failing the request.
func statsPayload(stats delay.Stats, err error) any {
	if err != nil {
		return envelope{"error": err.Error()}
	}
	return stats
}

func (a *App) handleRefreshData(w http.ResponseWriter, r *http.Request) {
	status := a.Schedule.Refresh(true)
	a.Metrics.SchedulesLoaded.Set(float64(status.SchedulesCount))
	a.Metrics.StationsLoaded.Set(float64(status.StationsCount))
	cleaned := a.Crowd.Cleanup(crowd.DefaultCleanupAge)

	respond(w, http.StatusOK, envelope{
		"message":             "Data refreshed successfully",
		"data_sources":        status,
		"cleaned_validations": cleaned,
	})
}

func (a *App) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := a.Schedule.Status()
	respond(w, http.StatusOK, envelope{
		"data_sources":      status,
		"crowd_validations": a.Crowd.Summary(),
		"system_health": envelope{
			"data_loader":   status.SchedulesCount > 0,
			"delay_model":   true,
			"crowd_store":   true,
			"response_time": "normal",
		},
	})
}
