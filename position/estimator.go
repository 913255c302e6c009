package position

import (
	"errors"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/schedule"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// ErrUnavailable reports that a position cannot be computed, typically
// because the train's route is empty.
var ErrUnavailable = errors.New("position unavailable")

const baseSpeedKMH = 60.0

// CurrentStopIndex locates the train along its route by clock time: the
// stop before the first one whose departure is strictly after now, or the
// last stop when every departure has passed. Stops without a parseable
// departure are skipped. This single scan rule is shared with the timeline
// so the two never disagree about where the train is.
func CurrentStopIndex(route []schedule.Stop, now time.Time) int {
	for i, stop := range route {
		dep, ok := utils.ParseClockTime(stop.DepartureTime, now)
		if !ok {
			continue
		}
		if dep.After(now) {
			if i == 0 {
				return 0
			}
			return i - 1
		}
	}
	return len(route) - 1
}

// Snapshot is a point-in-time estimate of a train's position.
type Snapshot struct {
	CurrentStationIdx  int     `json:"current_station_idx"`
	CurrentStation     string  `json:"current_station"`
	NextStation        string  `json:"next_station,omitempty"`
	ProgressPercentage float64 `json:"progress_percentage"`
	DistanceCovered    float64 `json:"distance_covered"`
	DistanceToNext     float64 `json:"distance_to_next"`
	ETAToNext          string  `json:"eta_to_next,omitempty"`
	TotalStations      int     `json:"total_stations"`
	CurrentTime        string  `json:"current_time"`
}

// Estimator computes position snapshots and synthetic speeds against the
// schedule store's current snapshot.
type Estimator struct {
	store *schedule.Store
	rng   delay.Rand
}

// NewEstimator creates an estimator. A nil rng selects the default source.
func NewEstimator(store *schedule.Store, rng delay.Rand) *Estimator {
	if rng == nil {
		rng = delay.NewRand()
	}
	return &Estimator{store: store, rng: rng}
}

// Snapshot estimates where a train is at the given time. Unknown trains
// report schedule.ErrTrainNotFound; a train without stops reports
// ErrUnavailable.
func (e *Estimator) Snapshot(trainNumber string, now time.Time) (Snapshot, error) {
	snap := e.store.Snapshot()
	route, ok := snap.Route(trainNumber)
	if !ok {
		return Snapshot{}, schedule.ErrTrainNotFound
	}
	if len(route) == 0 {
		return Snapshot{}, ErrUnavailable
	}

	idx := CurrentStopIndex(route, now)
	progress := 0.0
	if len(route) > 1 {
		progress = utils.RoundTo(float64(idx)/float64(len(route)-1)*100, 2)
	}

	pos := Snapshot{
		CurrentStationIdx:  idx,
		CurrentStation:     route[idx].City,
		ProgressPercentage: progress,
		DistanceCovered:    utils.RoundTo(snap.DistanceFromStart(route, idx), 2),
		DistanceToNext:     utils.RoundTo(snap.DistanceToNext(route, idx), 2),
		TotalStations:      len(route),
		CurrentTime:        utils.Iso8601(now),
	}
	if idx+1 < len(route) {
		next := route[idx+1]
		pos.NextStation = next.City
		if arr, ok := utils.ParseClockTime(next.ArrivalTime, now); ok {
			pos.ETAToNext = utils.FormatETA(arr.Sub(now))
		}
	}
	return pos, nil
}

// EstimateSpeed synthesizes a plausible current speed in km/h: a 60 km/h
// base slowed during peak hours, quickened at night, with a small random
// spread. Illustrative, not measured.
func (e *Estimator) EstimateSpeed(trainNumber string, now time.Time) float64 {
	snap := e.store.Snapshot()
	route, ok := snap.Route(trainNumber)
	if !ok || len(route) == 0 {
		return 0.0
	}

	speed := baseSpeedKMH
	switch h := now.Hour(); {
	case (h >= 6 && h <= 9) || (h >= 17 && h <= 20):
		speed *= 0.8
	case h >= 22 || h <= 5:
		speed *= 1.2
	}
	speed *= 0.9 + e.rng.Float64()*0.2
	return utils.RoundTo(speed, 1)
}
