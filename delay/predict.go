package delay

import (
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Prediction estimates how likely a delay is at a stop.
type Prediction struct {
	DelayProbability     float64            `json:"delay_probability"`
	Confidence           string             `json:"confidence"`
	HistoricalDataPoints int                `json:"historical_data_points,omitempty"`
	FactorsApplied       *PredictionFactors `json:"factors_applied,omitempty"`
}

// PredictionFactors are the schedule-derived multipliers applied to the
// historical delay rate.
type PredictionFactors struct {
	TimeOfDay float64 `json:"time_of_day"`
	DayOfWeek float64 `json:"day_of_week"`
}

// PredictProbability derives a delay probability from the (train, station)
// history, weighted by when the stop is scheduled and clamped to [0.1, 0.9].
// Confidence grows with the number of data points. With no history at all it
// falls back to the base probability at low confidence.
func (m *Model) PredictProbability(trainNumber, station string, scheduled time.Time) Prediction {
	m.mu.Lock()
	defer m.mu.Unlock()

	var delays []int
	if buckets, ok := m.history[trainNumber]; ok {
		if b, ok := buckets[station]; ok {
			delays = b.delays()
		}
	}
	if len(delays) == 0 {
		return Prediction{DelayProbability: m.baseProbability, Confidence: "low"}
	}

	delayed := 0
	for _, d := range delays {
		if d > 0 {
			delayed++
		}
	}
	tf := timeOfDayFactor(scheduled)
	df := dayOfWeekFactor(scheduled)
	p := float64(delayed) / float64(len(delays)) * tf * df
	if p < 0.1 {
		p = 0.1
	}
	if p > 0.9 {
		p = 0.9
	}

	confidence := "low"
	switch {
	case len(delays) >= 50:
		confidence = "high"
	case len(delays) >= 20:
		confidence = "medium"
	}

	return Prediction{
		DelayProbability:     utils.RoundTo(p, 3),
		Confidence:           confidence,
		HistoricalDataPoints: len(delays),
		FactorsApplied:       &PredictionFactors{TimeOfDay: tf, DayOfWeek: df},
	}
}
