package timeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/position"
	"github.com/theoremus-urban-solutions/trainjatri/schedule"
)

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

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	store := schedule.NewStore(writeTestData(t), time.Minute)
	model := delay.NewModel(nil, delay.Options{})
	return NewAssembler(store, model, position.NewEstimator(store, nil))
}

func TestGenerateStatusAt(t *testing.T) {
	a := newTestAssembler(t)
	now := time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

	report, err := a.GenerateStatusAt("706", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TrainNumber != "706" || report.TrainName != "Subarna Express" {
		t.Errorf("expected train 706 Subarna Express, got %s %s", report.TrainNumber, report.TrainName)
	}
	if len(report.StationStatuses) != 3 {
		t.Fatalf("expected 3 station statuses, got %d", len(report.StationStatuses))
	}

	wantTags := []string{StatusCompleted, StatusCurrent, StatusNext}
	for i, want := range wantTags {
		if got := report.StationStatuses[i].Status; got != want {
			t.Errorf("stop %d: expected status %s, got %s", i, want, got)
		}
	}

	if report.CurrentStation != "Tongi" {
		t.Errorf("expected current station Tongi, got %s", report.CurrentStation)
	}
	if report.NextStation != "Chattogram" {
		t.Errorf("expected next station Chattogram, got %s", report.NextStation)
	}
	if report.CurrentSpeed <= 0 {
		t.Errorf("expected positive speed, got %v", report.CurrentSpeed)
	}
	if report.WeatherCondition == "" {
		t.Error("expected an overall weather condition")
	}
	if report.LastUpdated == "" {
		t.Error("expected a last_updated timestamp")
	}
	if report.CrowdValidation != nil {
		t.Error("expected no crowd fields before adjustment")
	}
}

func TestOverallDelayIsWorstStop(t *testing.T) {
	a := newTestAssembler(t)
	now := time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

	report, err := a.GenerateStatusAt("706", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	worst := 0
	for _, st := range report.StationStatuses {
		if st.DelayMinutes < 0 {
			t.Errorf("station %s: negative delay %v", st.StationName, st.DelayMinutes)
		}
		if st.DelayMinutes > worst {
			worst = st.DelayMinutes
		}
	}
	if report.DelayMinutes != worst {
		t.Errorf("expected overall delay %v, got %v", worst, report.DelayMinutes)
	}
}

func TestStationStatusFields(t *testing.T) {
	a := newTestAssembler(t)
	now := time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

	report, err := a.GenerateStatusAt("706", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := report.StationStatuses[0]
	if first.DistanceFromStart != 0 {
		t.Errorf("expected origin at distance 0, got %v", first.DistanceFromStart)
	}
	last := report.StationStatuses[2]
	if last.DistanceFromStart <= 0 {
		t.Errorf("expected positive distance for last stop, got %v", last.DistanceFromStart)
	}
	for _, st := range report.StationStatuses {
		if st.CrowdLevel == "" {
			t.Errorf("station %s: expected a crowd level", st.StationName)
		}
		if st.WeatherCondition == "" {
			t.Errorf("station %s: expected a weather condition", st.StationName)
		}
	}
}

func TestStationTimesSerializeAsISO(t *testing.T) {
	a := newTestAssembler(t)
	now := time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

	report, err := a.GenerateStatusAt("706", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origin := report.StationStatuses[0]
	if origin.ScheduledArrival != "" {
		t.Errorf("expected empty scheduled arrival for origin, got %q", origin.ScheduledArrival)
	}
	if want := "2025-03-12T09:00:00Z"; origin.ScheduledDeparture != want {
		t.Errorf("expected %v, got %v", want, origin.ScheduledDeparture)
	}

	actual, err := time.Parse(time.RFC3339, origin.ActualDeparture)
	if err != nil {
		t.Fatalf("actual departure is not RFC3339: %v", err)
	}
	sched, _ := time.Parse(time.RFC3339, origin.ScheduledDeparture)
	if got := int(actual.Sub(sched).Minutes()); got != origin.DelayMinutes {
		t.Errorf("expected actual departure %v minutes after scheduled, got %v", origin.DelayMinutes, got)
	}

	mid := report.StationStatuses[1]
	if _, err := time.Parse(time.RFC3339, mid.ScheduledArrival); err != nil {
		t.Errorf("scheduled arrival is not RFC3339: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, mid.ActualArrival); err != nil {
		t.Errorf("actual arrival is not RFC3339: %v", err)
	}
}

func TestGenerateStatusPositionDegrade(t *testing.T) {
	store := schedule.NewStore(writeTestData(t), time.Minute)
	model := delay.NewModel(nil, delay.Options{})
	a := NewAssembler(store, model, position.NewEstimator(schedule.NewStore(t.TempDir(), time.Minute), nil))

	report, err := a.GenerateStatusAt("706", time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.CurrentStation != "Unknown" {
		t.Errorf("expected current station Unknown, got %q", report.CurrentStation)
	}
	if report.NextStation != "Unknown" {
		t.Errorf("expected next station Unknown, got %q", report.NextStation)
	}
	if report.EstimatedArrival != "Unknown" {
		t.Errorf("expected estimated arrival Unknown, got %q", report.EstimatedArrival)
	}
	if report.ProgressPercentage != 0 {
		t.Errorf("expected zero progress, got %v", report.ProgressPercentage)
	}
}

func TestGenerateStatusUnknownTrain(t *testing.T) {
	a := newTestAssembler(t)
	_, err := a.GenerateStatusAt("999", time.Now())
	if !errors.Is(err, schedule.ErrTrainNotFound) {
		t.Errorf("expected ErrTrainNotFound, got %v", err)
	}
}

func TestCrowdLevelHeuristic(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		stop schedule.Stop
		want string
	}{
		{name: "hub at peak", stop: schedule.Stop{City: "Dhaka", ArrivalTime: "8:00 AM"}, want: "high"},
		{name: "non-hub at peak", stop: schedule.Stop{City: "Tongi", ArrivalTime: "6:00 PM"}, want: "medium"},
		{name: "late night", stop: schedule.Stop{City: "Dhaka", ArrivalTime: "11:30 PM"}, want: "low"},
		{name: "hub off peak", stop: schedule.Stop{City: "Chattogram", ArrivalTime: "1:00 PM"}, want: "medium"},
		{name: "non-hub off peak", stop: schedule.Stop{City: "Tongi", ArrivalTime: "1:00 PM"}, want: "normal"},
		{name: "no parseable time", stop: schedule.Stop{City: "Tongi", ArrivalTime: "---"}, want: "normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crowdLevel(tt.stop, now); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
