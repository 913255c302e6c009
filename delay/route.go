package delay

import (
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/schedule"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// History bucket keys for synthetic sweeps. Route and per-station sweeps
// record under these keys instead of a real train number so they do not
// pollute the train's own history.
const (
	RouteSimulationKey   = "ROUTE_SIMULATION"
	StationSimulationKey = "STATION_SIMULATION"
)

// SimulatedStop is a scheduled stop annotated with the delay simulated for
// it. Stops whose times cannot be parsed carry no simulation.
type SimulatedStop struct {
	schedule.Stop
	SimulatedDelay   *Result `json:"simulated_delay,omitempty"`
	WeatherCondition string  `json:"weather_condition,omitempty"`
}

// SimulateRoute simulates delays along a whole route. Each stop's actual
// time feeds the next stop's simulation so delays propagate forward, and
// every draw is recorded under the RouteSimulationKey bucket.
func (m *Model) SimulateRoute(stops []schedule.Stop, now time.Time) []SimulatedStop {
	out := make([]SimulatedStop, 0, len(stops))
	cursor := now
	for _, stop := range stops {
		scheduled, ok := utils.ParseClockTime(stop.DepartureTime, now)
		if !ok {
			scheduled, ok = utils.ParseClockTime(stop.ArrivalTime, now)
		}
		if !ok {
			out = append(out, SimulatedStop{Stop: stop})
			continue
		}
		weather := m.WeatherCondition(stop.City, cursor)
		res := m.Simulate(RouteSimulationKey, stop.City, scheduled, cursor, weather)
		cursor = scheduled.Add(time.Duration(res.DelayMinutes) * time.Minute)
		out = append(out, SimulatedStop{Stop: stop, SimulatedDelay: &res, WeatherCondition: weather})
	}
	return out
}
