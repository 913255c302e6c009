package trainjatri

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/trainjatri/schedule"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

func (a *App) handleTrainSearch(w http.ResponseWriter, r *http.Request) {
	number := queryParam(r, "number")
	from := queryParam(r, "from")
	to := queryParam(r, "to")

	switch {
	case number != "":
		a.cache.serve(w, a.cache.key("search-number", number), func() (int, []byte) {
			results := a.Schedule.Snapshot().SearchByNumber(number)
			fields := envelope{
				"search_type": "train_number",
				"query":       number,
				"results":     schedules(results),
				"total_count": len(results),
			}
			if len(results) == 0 {
				fields["message"] = "No trains found with the specified number"
			}
			body, _ := json.Marshal(successEnvelope(fields))
			return http.StatusOK, body
		})
	case from != "" && to != "":
		a.cache.serve(w, a.cache.key("search-stations", from, to), func() (int, []byte) {
			results := a.Schedule.Snapshot().SearchByStations(from, to)
			fields := envelope{
				"search_type": "station_to_station",
				"from":        from,
				"to":          to,
				"results":     schedules(results),
				"total_count": len(results),
			}
			if len(results) == 0 {
				fields["message"] = fmt.Sprintf("No trains found between %s and %s", from, to)
			}
			body, _ := json.Marshal(successEnvelope(fields))
			return http.StatusOK, body
		})
	default:
		writeError(w, http.StatusBadRequest,
			"Invalid search parameters. Use 'from' and 'to' for station search or 'number' for train search.")
	}
}

// schedules flattens search results into full schedule documents keyed by
// train number, the shape clients have always consumed.
func schedules(results []schedule.SearchResult) []envelope {
	out := make([]envelope, 0, len(results))
	for _, res := range results {
		out = append(out, envelope{
			"train_number": res.TrainKey,
			"train_name":   res.Schedule.Name(),
			"days":         res.Schedule.Data.Days,
			"routes":       res.Schedule.Data.Routes,
		})
	}
	return out
}

func (a *App) handleTrainStatus(w http.ResponseWriter, r *http.Request) {
	trainNumber := chi.URLParam(r, "trainNumber")

	report, err := a.Timeline.GenerateStatus(trainNumber)
	if err != nil {
		if errors.Is(err, schedule.ErrTrainNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Train %s not found", trainNumber))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Crowd.AdjustStatus(report)
	a.Events.PublishStatusRequest(trainNumber, report.DelayMinutes)

	respond(w, http.StatusOK, envelope{
		"train_number": trainNumber,
		"status":       report,
	})
}

func (a *App) handleTrainSummary(w http.ResponseWriter, r *http.Request) {
	trainNumber := chi.URLParam(r, "trainNumber")

	a.cache.serve(w, a.cache.key("summary", trainNumber), func() (int, []byte) {
		snap := a.Schedule.Snapshot()
		train, ok := snap.Train(trainNumber)
		if !ok || len(train.Data.Routes) == 0 {
			body, _ := json.Marshal(envelope{
				"success":   false,
				"error":     fmt.Sprintf("Train %s not found", trainNumber),
				"timestamp": utils.Iso8601Now(),
			})
			return http.StatusNotFound, body
		}
		route := train.Data.Routes

		summary := envelope{
			"train_number":   trainNumber,
			"train_name":     train.Name(),
			"operating_days": train.Data.Days,
			"total_stations": len(route),
			"route_summary": envelope{
				"origin":         route[0].City,
				"destination":    route[len(route)-1].City,
				"total_distance": snap.TotalRouteDistance(route),
			},
			"schedule_info": envelope{
				"departure_time": route[0].DepartureTime,
				"arrival_time":   route[len(route)-1].ArrivalTime,
			},
			"crowd_data": a.Crowd.CrowdData(trainNumber),
		}
		body, _ := json.Marshal(successEnvelope(envelope{"summary": summary}))
		return http.StatusOK, body
	})
}
