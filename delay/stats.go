package delay

import (
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// ErrNoData reports that a statistics request has no observations behind it.
// Absence is deliberately distinguishable from zero-valued statistics.
var ErrNoData = errors.New("no historical delay data")

var (
	errNoTrainData   = fmt.Errorf("no historical data available: %w", ErrNoData)
	errNoStationData = fmt.Errorf("no data for this station: %w", ErrNoData)
	errNoDelayData   = fmt.Errorf("no delay data available: %w", ErrNoData)
)

// Stats describes the recorded delays for a train, or for one of its
// stations.
type Stats struct {
	TotalDelays       int            `json:"total_delays"`
	AverageDelay      float64        `json:"average_delay"`
	MaxDelay          int            `json:"max_delay"`
	MinDelay          int            `json:"min_delay"`
	DelayDistribution map[string]int `json:"delay_distribution"`
}

// HistoricalStats summarizes recorded delays. With an empty station it
// covers every station the train has observations for. Missing history is
// an error wrapping ErrNoData, never zero-filled stats.
func (m *Model) HistoricalStats(trainNumber, station string) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buckets, ok := m.history[trainNumber]
	if !ok {
		return Stats{}, errNoTrainData
	}

	var delays []int
	if station != "" {
		b, ok := buckets[station]
		if !ok {
			return Stats{}, errNoStationData
		}
		delays = b.delays()
	} else {
		for _, b := range buckets {
			delays = append(delays, b.delays()...)
		}
	}
	if len(delays) == 0 {
		return Stats{}, errNoDelayData
	}

	sum, maxDelay, minDelay := 0, delays[0], delays[0]
	for _, d := range delays {
		sum += d
		if d > maxDelay {
			maxDelay = d
		}
		if d < minDelay {
			minDelay = d
		}
	}
	return Stats{
		TotalDelays:       len(delays),
		AverageDelay:      utils.RoundTo(float64(sum)/float64(len(delays)), 1),
		MaxDelay:          maxDelay,
		MinDelay:          minDelay,
		DelayDistribution: distribution(delays),
	}, nil
}

func distribution(delays []int) map[string]int {
	dist := map[string]int{
		"0-15 min":  0,
		"16-30 min": 0,
		"31-60 min": 0,
		"60+ min":   0,
	}
	for _, d := range delays {
		switch {
		case d <= 15:
			dist["0-15 min"]++
		case d <= 30:
			dist["16-30 min"]++
		case d <= 60:
			dist["31-60 min"]++
		default:
			dist["60+ min"]++
		}
	}
	return dist
}
