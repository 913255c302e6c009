package timeline

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/position"
	"github.com/theoremus-urban-solutions/trainjatri/schedule"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Station status tags relative to the train's current position.
const (
	StatusCompleted = "completed"
	StatusCurrent   = "current"
	StatusNext      = "next"
	StatusUpcoming  = "upcoming"
)

// majorStations are treated as crowd hubs by the per-stop heuristic.
var majorStations = []string{"Dhaka", "Chattogram", "Rajshahi", "Khulna", "Sylhet"}

// Assembler builds TrainStatus reports from the schedule store, the delay
// model, and the position estimator.
type Assembler struct {
	store    *schedule.Store
	delays   *delay.Model
	position *position.Estimator
}

// NewAssembler wires an assembler over its three sources.
func NewAssembler(store *schedule.Store, delays *delay.Model, pos *position.Estimator) *Assembler {
	return &Assembler{store: store, delays: delays, position: pos}
}

// GenerateStatus assembles the live report for a train as of now.
func (a *Assembler) GenerateStatus(trainNumber string) (*TrainStatus, error) {
	return a.GenerateStatusAt(trainNumber, time.Now())
}

// GenerateStatusAt assembles the live report for a train at a given time.
// Unknown trains report schedule.ErrTrainNotFound; position failures degrade
// to zero values rather than failing the report.
func (a *Assembler) GenerateStatusAt(trainNumber string, now time.Time) (*TrainStatus, error) {
	snap := a.store.Snapshot()
	train, ok := snap.Train(trainNumber)
	if !ok || len(train.Data.Routes) == 0 {
		return nil, schedule.ErrTrainNotFound
	}
	route := train.Data.Routes

	idx := position.CurrentStopIndex(route, now)
	statuses := a.stationStatuses(snap, route, idx, now)

	overallDelay := 0
	for _, st := range statuses {
		if st.DelayMinutes > overallDelay {
			overallDelay = st.DelayMinutes
		}
	}

	report := &TrainStatus{
		TrainNumber:      trainNumber,
		TrainName:        train.Name(),
		StationStatuses:  statuses,
		CurrentSpeed:     a.position.EstimateSpeed(trainNumber, now),
		DelayMinutes:     overallDelay,
		CurrentStation:   "Unknown",
		NextStation:      "Unknown",
		EstimatedArrival: "Unknown",
		WeatherCondition: a.delays.WeatherCondition(route[idx].City, now),
		LastUpdated:      utils.Iso8601(now),
	}

	if pos, err := a.position.Snapshot(trainNumber, now); err == nil {
		report.ProgressPercentage = pos.ProgressPercentage
		report.CurrentStation = pos.CurrentStation
		report.NextStation = pos.NextStation
		report.DistanceCovered = pos.DistanceCovered
		report.DistanceToNext = pos.DistanceToNext
		report.EstimatedArrival = pos.ETAToNext
	}
	return report, nil
}

// stationStatuses tags and annotates every stop. Arrival and departure are
// simulated independently under the station-simulation key; the stop's delay
// is the worse of the two. Times serialize as ISO 8601 datetimes anchored on
// the report day; a stop without a scheduled time leaves the field empty.
func (a *Assembler) stationStatuses(snap *schedule.Snapshot, route []schedule.Stop, idx int, now time.Time) []StationStatus {
	statuses := make([]StationStatus, 0, len(route))
	for i, stop := range route {
		weather := a.delays.WeatherCondition(stop.City, now)
		st := StationStatus{
			StationName:       stop.City,
			Status:            statusTag(i, idx),
			HaltDuration:      stop.Halt,
			Duration:          stop.Duration,
			DistanceFromStart: utils.RoundTo(snap.DistanceFromStart(route, i), 2),
			WeatherCondition:  weather,
			CrowdLevel:        crowdLevel(stop, now),
		}

		if arr, ok := utils.ParseClockTime(stop.ArrivalTime, now); ok {
			st.ScheduledArrival = utils.Iso8601(arr)
			st.ActualArrival = st.ScheduledArrival
			res := a.delays.Simulate(delay.StationSimulationKey, stop.City, arr, now, weather)
			if res.DelayMinutes > 0 {
				st.ActualArrival = utils.Iso8601(arr.Add(time.Duration(res.DelayMinutes) * time.Minute))
			}
			if res.DelayMinutes > st.DelayMinutes {
				st.DelayMinutes = res.DelayMinutes
			}
		}
		if dep, ok := utils.ParseClockTime(stop.DepartureTime, now); ok {
			st.ScheduledDeparture = utils.Iso8601(dep)
			st.ActualDeparture = st.ScheduledDeparture
			res := a.delays.Simulate(delay.StationSimulationKey, stop.City, dep, now, weather)
			if res.DelayMinutes > 0 {
				st.ActualDeparture = utils.Iso8601(dep.Add(time.Duration(res.DelayMinutes) * time.Minute))
			}
			if res.DelayMinutes > st.DelayMinutes {
				st.DelayMinutes = res.DelayMinutes
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func statusTag(i, current int) string {
	switch {
	case i < current:
		return StatusCompleted
	case i == current:
		return StatusCurrent
	case i == current+1:
		return StatusNext
	default:
		return StatusUpcoming
	}
}

// crowdLevel is a schedule-only heuristic: peak hours at hub stations run
// high, night hours run low. No live signal is involved here.
func crowdLevel(stop schedule.Stop, now time.Time) string {
	t, ok := utils.ParseClockTime(stop.ArrivalTime, now)
	if !ok {
		t, ok = utils.ParseClockTime(stop.DepartureTime, now)
	}
	if !ok {
		return "normal"
	}

	hub := false
	lower := strings.ToLower(stop.City)
	for _, name := range majorStations {
		if strings.Contains(lower, strings.ToLower(name)) {
			hub = true
			break
		}
	}

	switch h := t.Hour(); {
	case (h >= 7 && h <= 9) || (h >= 17 && h <= 19):
		if hub {
			return "high"
		}
		return "medium"
	case h >= 22 || h <= 5:
		return "low"
	default:
		if hub {
			return "medium"
		}
		return "normal"
	}
}
