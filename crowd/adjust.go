package crowd

import (
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/timeline"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// AdjustStatus refines a report's delay with the live crowd signal. Only a
// medium or high confidence signal moves the number; a weak signal leaves
// the report untouched. The adjustment is a small signed random nudge sized
// by crowd level and scaled up with more active users, never pushing the
// delay below zero. Best-effort refinement, not ground truth.
func (s *Store) AdjustStatus(report *timeline.TrainStatus) {
	if report == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	m := s.metricsLocked(report.TrainNumber, now)
	if m.Confidence != "medium" && m.Confidence != "high" {
		return
	}

	adjusted := report.DelayMinutes + s.delayAdjustmentLocked(m)
	if adjusted < 0 {
		adjusted = 0
	}
	report.DelayMinutes = adjusted
	report.CrowdValidation = &timeline.CrowdValidation{
		Confidence:  m.Confidence,
		ActiveUsers: m.ActiveUsers,
		CrowdLevel:  m.CrowdLevel,
		LastUpdated: utils.Iso8601(now),
	}
	if m.Confidence == "high" && m.ActiveUsers > 5 {
		report.ETAAdjustedByCrowd = true
		report.CrowdETAConfidence = "high"
	}
}

// delayAdjustmentLocked draws the signed nudge. Magnitude grows with the
// crowd level; a larger active user base scales it further. The busier
// scale is checked first so it is actually reachable.
func (s *Store) delayAdjustmentLocked(m Metrics) int {
	base := 0
	switch m.CrowdLevel {
	case "medium":
		base = s.rng.IntN(5) - 2
	case "high":
		base = s.rng.IntN(11) - 5
	case "very_high":
		base = s.rng.IntN(17) - 8
	}

	scale := 1.0
	if m.ActiveUsers > 20 {
		scale = 2.0
	} else if m.ActiveUsers > 10 {
		scale = 1.5
	}
	return int(float64(base) * scale)
}
