package crowd

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/trainjatri/timeline"
)

// scriptedRand replays fixed draws for deterministic adjustments.
type scriptedRand struct {
	ints []int
	i    int
}

func (s *scriptedRand) Float64() float64 { return 0.5 }

func (s *scriptedRand) IntN(n int) int {
	v := s.ints[s.i%len(s.ints)] % n
	s.i++
	return v
}

func TestAdjustStatusLowConfidenceUnchanged(t *testing.T) {
	s := newTestStore(t)
	confirmUsers(t, s, "706", 2) // confidence "low"

	report := &timeline.TrainStatus{TrainNumber: "706", DelayMinutes: 12}
	before, err := json.Marshal(report)
	require.NoError(t, err)

	s.AdjustStatus(report)
	after, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Equal(t, before, after, "weak signal must not touch the report")
}

func TestAdjustStatusMediumConfidence(t *testing.T) {
	s, err := NewStore(NewMemoryStore(), &scriptedRand{ints: []int{4}}, Options{})
	require.NoError(t, err)
	confirmUsers(t, s, "706", 5) // confidence "medium", level "medium"

	report := &timeline.TrainStatus{TrainNumber: "706", DelayMinutes: 10}
	s.AdjustStatus(report)

	// IntN(5)=4 -> 4-2 = +2, no scale at 5 active users.
	assert.Equal(t, 12, report.DelayMinutes)
	require.NotNil(t, report.CrowdValidation)
	assert.Equal(t, "medium", report.CrowdValidation.Confidence)
	assert.Equal(t, 5, report.CrowdValidation.ActiveUsers)
	assert.False(t, report.ETAAdjustedByCrowd)
}

func TestAdjustStatusHighConfidenceETA(t *testing.T) {
	s, err := NewStore(NewMemoryStore(), &scriptedRand{ints: []int{10}}, Options{})
	require.NoError(t, err)
	confirmUsers(t, s, "706", 12) // confidence "high", level "high", scale 1.5

	report := &timeline.TrainStatus{TrainNumber: "706", DelayMinutes: 10}
	s.AdjustStatus(report)

	// IntN(11)=10 -> 10-5 = +5, scaled 1.5 -> +7.
	assert.Equal(t, 17, report.DelayMinutes)
	assert.True(t, report.ETAAdjustedByCrowd)
	assert.Equal(t, "high", report.CrowdETAConfidence)
}

func TestAdjustStatusClampsAtZero(t *testing.T) {
	s, err := NewStore(NewMemoryStore(), &scriptedRand{ints: []int{0}}, Options{})
	require.NoError(t, err)
	confirmUsers(t, s, "706", 5) // IntN(5)=0 -> -2

	report := &timeline.TrainStatus{TrainNumber: "706", DelayMinutes: 1}
	s.AdjustStatus(report)
	assert.Equal(t, 0, report.DelayMinutes, "adjusted delay never goes negative")
}

func TestDelayAdjustmentScale(t *testing.T) {
	tests := []struct {
		users int
		draw  int
		want  int
	}{
		{users: 25, draw: 16, want: 16}, // very_high, IntN(17)=16 -> +8, x2.0
		{users: 12, draw: 10, want: 7},  // high, IntN(11)=10 -> +5, x1.5
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d users", tt.users), func(t *testing.T) {
			s, err := NewStore(NewMemoryStore(), &scriptedRand{ints: []int{tt.draw}}, Options{})
			require.NoError(t, err)
			confirmUsers(t, s, "706", tt.users)

			m := s.Metrics("706")
			got := s.delayAdjustmentLocked(m)
			assert.Equal(t, tt.want, got)
		})
	}
}
