package trainjatri

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) handleStations(w http.ResponseWriter, r *http.Request) {
	a.cache.serve(w, a.cache.key("stations"), func() (int, []byte) {
		stations := a.Schedule.Snapshot().Stations()
		body, _ := json.Marshal(successEnvelope(envelope{
			"stations":    stations,
			"total_count": len(stations),
		}))
		return http.StatusOK, body
	})
}

func (a *App) handleStationTrains(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "stationName")
	a.cache.serve(w, a.cache.key("station-trains", station), func() (int, []byte) {
		trains := a.Schedule.Snapshot().TrainsAtStation(station)
		body, _ := json.Marshal(successEnvelope(envelope{
			"station":     station,
			"trains":      trains,
			"total_count": len(trains),
		}))
		return http.StatusOK, body
	})
}
