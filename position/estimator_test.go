package position

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/schedule"
)

func testRoute() []schedule.Stop {
	return []schedule.Stop{
		{City: "Dhaka", ArrivalTime: "---", DepartureTime: "9:00 AM"},
		{City: "Tongi", ArrivalTime: "10:00 AM", DepartureTime: "10:05 AM"},
		{City: "Chattogram", ArrivalTime: "11:00 AM", DepartureTime: "---"},
	}
}

func clock(hour, min int) time.Time {
	return time.Date(2025, 3, 12, hour, min, 0, 0, time.UTC)
}

func TestCurrentStopIndex(t *testing.T) {
	route := testRoute()

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before departure", now: clock(8, 0), want: 0},
		{name: "between first and second", now: clock(9, 30), want: 0},
		{name: "mid route", now: clock(10, 30), want: 1},
		{name: "all departures past", now: clock(12, 0), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStopIndex(route, tt.now); got != tt.want {
				t.Errorf("expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCurrentStopIndexSkipsUnparseable(t *testing.T) {
	route := []schedule.Stop{
		{City: "A", DepartureTime: "---"},
		{City: "B", DepartureTime: "garbage"},
		{City: "C", DepartureTime: "5:00 PM"},
	}
	if got := CurrentStopIndex(route, clock(10, 0)); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
}

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	stations := `{
		"Dhaka": [90.4125, 23.8103],
		"Tongi": [90.4037, 23.8915],
		"Chattogram": [91.8123, 22.3569]
	}`
	if err := os.WriteFile(filepath.Join(dir, "stations.json"), []byte(stations), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "schedules"), 0o755); err != nil {
		t.Fatal(err)
	}
	train := `{
		"data": {
			"train_name": "Subarna Express",
			"days": ["Sunday"],
			"routes": [
				{"city": "Dhaka", "arrival_time": "---", "departure_time": "9:00 AM", "halt": "---", "duration": "---"},
				{"city": "Tongi", "arrival_time": "10:00 AM", "departure_time": "10:05 AM", "halt": "5m", "duration": "1h"},
				{"city": "Chattogram", "arrival_time": "11:00 AM", "departure_time": "---", "halt": "---", "duration": "1h"}
			]
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "schedules", "706.json"), []byte(train), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSnapshot(t *testing.T) {
	store := schedule.NewStore(writeTestData(t), time.Minute)
	est := NewEstimator(store, nil)

	pos, err := est.Snapshot("706", clock(10, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.CurrentStationIdx != 1 {
		t.Errorf("expected index 1, got %d", pos.CurrentStationIdx)
	}
	if pos.CurrentStation != "Tongi" || pos.NextStation != "Chattogram" {
		t.Errorf("expected Tongi -> Chattogram, got %s -> %s", pos.CurrentStation, pos.NextStation)
	}
	if pos.ProgressPercentage != 50.0 {
		t.Errorf("expected 50%% progress, got %v", pos.ProgressPercentage)
	}
	if pos.DistanceCovered <= 0 || pos.DistanceToNext <= 0 {
		t.Errorf("expected positive distances, got covered=%v next=%v", pos.DistanceCovered, pos.DistanceToNext)
	}
	if pos.ETAToNext != "30m" {
		t.Errorf("expected ETA 30m, got %q", pos.ETAToNext)
	}
	if pos.TotalStations != 3 {
		t.Errorf("expected 3 stations, got %d", pos.TotalStations)
	}
}

func TestSnapshotAtLastStop(t *testing.T) {
	store := schedule.NewStore(writeTestData(t), time.Minute)
	est := NewEstimator(store, nil)

	pos, err := est.Snapshot("706", clock(15, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.CurrentStationIdx != 2 {
		t.Errorf("expected last index, got %d", pos.CurrentStationIdx)
	}
	if pos.NextStation != "" {
		t.Errorf("expected no next station, got %q", pos.NextStation)
	}
	if pos.ProgressPercentage != 100.0 {
		t.Errorf("expected 100%% progress, got %v", pos.ProgressPercentage)
	}
	if pos.DistanceToNext != 0 {
		t.Errorf("expected 0 distance to next, got %v", pos.DistanceToNext)
	}
}

func TestSnapshotUnknownTrain(t *testing.T) {
	store := schedule.NewStore(writeTestData(t), time.Minute)
	est := NewEstimator(store, nil)

	_, err := est.Snapshot("999", clock(10, 0))
	if !errors.Is(err, schedule.ErrTrainNotFound) {
		t.Errorf("expected ErrTrainNotFound, got %v", err)
	}
}

func TestEstimateSpeed(t *testing.T) {
	store := schedule.NewStore(writeTestData(t), time.Minute)
	est := NewEstimator(store, nil)

	tests := []struct {
		name string
		now  time.Time
		min  float64
		max  float64
	}{
		{name: "peak morning", now: clock(8, 0), min: 60 * 0.8 * 0.9, max: 60 * 0.8 * 1.1},
		{name: "off peak", now: clock(13, 0), min: 60 * 0.9, max: 60 * 1.1},
		{name: "night", now: clock(23, 0), min: 60 * 1.2 * 0.9, max: 60 * 1.2 * 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				speed := est.EstimateSpeed("706", tt.now)
				if speed < tt.min || speed > tt.max {
					t.Fatalf("expected speed in [%v, %v], got %v", tt.min, tt.max, speed)
				}
			}
		})
	}

	if speed := est.EstimateSpeed("999", clock(10, 0)); speed != 0 {
		t.Errorf("expected 0 speed for unknown train, got %v", speed)
	}
}
